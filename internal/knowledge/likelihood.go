package knowledge

// likelihoodTable returns P(evidence | failure) for every recognized
// evidence/failure pair. Failures absent from a row fall back to the
// reasoner's weak default (0.1), so rows only list hypotheses the evidence
// meaningfully confirms or excludes. The "normal" entries are deliberately
// small: abnormal evidence is rare on a healthy vehicle.
//
// Values are calibrated domain knowledge, not derived quantities. Edit with
// care — the engine's ranked output depends on them directly.
func likelihoodTable() map[string]map[string]float64 {
	return map[string]map[string]float64{
		// ---- Sensor-threshold evidence ----
		"coolant_temp_high": {
			"thermostat_stuck_closed":   0.85,
			"water_pump_failure":        0.80,
			"cooling_fan_not_operating": 0.80,
			"radiator_clogged":          0.75,
			"coolant_leak":              0.70,
			"head_gasket_failure":       0.65,
			"ect_sensor_failed_high":    0.60,
			"normal":                    0.02,
		},
		"coolant_temp_low": {
			"thermostat_stuck_open": 0.90,
			"ect_sensor_failed_low": 0.85,
			"normal":                0.05,
		},
		"low_oil_pressure": {
			"oil_pressure_low":        0.90,
			"vvt_solenoid_failure":    0.30,
			"timing_chain_stretched":  0.25,
			"normal":                  0.02,
		},
		"battery_voltage_low": {
			"battery_degraded":           0.80,
			"alternator_failure":         0.75,
			"dcdc_converter_failure":     0.60,
			"battery_terminal_corrosion": 0.50,
			"serpentine_belt_worn":       0.40,
			"normal":                     0.03,
		},
		"battery_voltage_high": {
			"voltage_regulator_failure": 0.90,
			"normal":                    0.02,
		},
		"charging_voltage_low": {
			"alternator_failure":         0.90,
			"voltage_regulator_failure":  0.70,
			"serpentine_belt_worn":       0.50,
			"battery_terminal_corrosion": 0.35,
			"normal":                     0.02,
		},
		"charging_voltage_high": {
			"voltage_regulator_failure": 0.92,
			"normal":                    0.02,
		},
		"ac_ripple_high": {
			"alternator_diode_leak": 0.95,
			"normal":                0.02,
		},
		"maf_low": {
			"maf_sensor_contaminated": 0.85,
			"vacuum_leak":             0.55,
			"normal":                  0.05,
		},
		"maf_high": {
			"maf_sensor_contaminated": 0.50,
			"normal":                  0.10,
		},
		"o2_voltage_low_stuck": {
			"vacuum_leak":            0.80,
			"fuel_pump_weak":         0.60,
			"fuel_injector_clogged":  0.60,
			"fuel_filter_clogged":    0.55,
			"o2_sensor_failed":       0.50,
			"evap_purge_valve_stuck": 0.50,
			"normal":                 0.03,
		},
		"o2_voltage_high_stuck": {
			"fuel_injector_leaking":           0.80,
			"fuel_pressure_regulator_failure": 0.70,
			"o2_sensor_failed":                0.50,
			"maf_sensor_contaminated":         0.40,
			"normal":                          0.03,
		},
		"fuel_pressure_low": {
			"fuel_pump_weak":                  0.90,
			"fuel_filter_clogged":             0.80,
			"fuel_pressure_regulator_failure": 0.60,
			"normal":                          0.02,
		},
		"fuel_pressure_high": {
			"fuel_pressure_regulator_failure": 0.85,
			"normal":                          0.03,
		},
		"high_total_fuel_trim": {
			"vacuum_leak":             0.90,
			"maf_sensor_contaminated": 0.60,
			"fuel_pump_weak":          0.50,
			"evap_purge_valve_stuck":  0.45,
			"o2_sensor_failed":        0.40,
			"pcv_valve_stuck":         0.40,
			"normal":                  0.02,
		},
		"moderate_total_fuel_trim": {
			"vacuum_leak":             0.75,
			"maf_sensor_contaminated": 0.55,
			"fuel_pump_weak":          0.45,
			"evap_purge_valve_stuck":  0.40,
			"o2_sensor_failed":        0.35,
			"pcv_valve_stuck":         0.35,
			"normal":                  0.05,
		},
		"boost_pressure_low": {
			"turbo_boost_leak":     0.85,
			"turbo_wastegate_stuck": 0.70,
			"intercooler_leak":     0.70,
			"turbo_bearing_wear":   0.50,
			"normal":               0.03,
		},
		"boost_pressure_high": {
			"turbo_wastegate_stuck": 0.90,
			"normal":                0.02,
		},
		"trans_temp_high": {
			"transmission_fluid_low":   0.70,
			"torque_converter_failure": 0.60,
			"transmission_slipping":    0.60,
			"radiator_clogged":         0.30,
			"normal":                   0.03,
		},
		"idle_rpm_unstable": {
			"idle_air_control_failure": 0.75,
			"throttle_body_dirty":      0.70,
			"vacuum_leak":              0.65,
			"egr_valve_stuck":          0.50,
			"normal":                   0.05,
		},
		"insulation_resistance_low": {
			"tesla_hv_isolation_fault": 0.98,
			"hv_battery_cell_imbalance": 0.15,
			"normal":                   0.01,
		},
		"hv_cell_delta_high": {
			"hv_battery_cell_imbalance": 0.90,
			"normal":                    0.02,
		},

		// ---- Symptom evidence ----
		"engine_overheating": {
			"thermostat_stuck_closed":   0.80,
			"cooling_fan_not_operating": 0.75,
			"water_pump_failure":        0.70,
			"radiator_clogged":          0.70,
			"coolant_leak":              0.65,
			"head_gasket_failure":       0.60,
			"normal":                    0.01,
		},
		"engine_running_cold": {
			"thermostat_stuck_open": 0.90,
			"ect_sensor_failed_low": 0.60,
			"normal":                0.05,
		},
		"no_heat_from_heater": {
			"thermostat_stuck_open": 0.80,
			"heater_core_clogged":   0.80,
			"coolant_leak":          0.50,
			"water_pump_failure":    0.35,
			"normal":                0.02,
		},
		"coolant_loss_visible": {
			"coolant_leak":        0.90,
			"head_gasket_failure": 0.50,
			"water_pump_failure":  0.50,
			"radiator_clogged":    0.20,
			"normal":              0.01,
		},
		"white_smoke_exhaust": {
			"head_gasket_failure": 0.85,
			"normal":              0.02,
		},
		"sweet_smell": {
			"coolant_leak":        0.80,
			"heater_core_clogged": 0.60,
			"normal":              0.02,
		},
		"rough_idle": {
			"vacuum_leak":              0.80,
			"spark_plugs_worn":         0.60,
			"ignition_coil_failure":    0.60,
			"fuel_injector_clogged":    0.60,
			"egr_valve_stuck":          0.50,
			"throttle_body_dirty":      0.50,
			"idle_air_control_failure": 0.50,
			"vvt_solenoid_failure":     0.45,
			"pcv_valve_stuck":          0.40,
			"normal":                   0.02,
		},
		"hesitation_on_acceleration": {
			"vacuum_leak":                 0.70,
			"fuel_filter_clogged":         0.60,
			"fuel_pump_weak":              0.60,
			"maf_sensor_contaminated":     0.55,
			"spark_plugs_worn":            0.50,
			"throttle_body_dirty":         0.40,
			"catalytic_converter_clogged": 0.40,
			"normal":                      0.03,
		},
		"engine_misfire_felt": {
			"ignition_coil_failure": 0.80,
			"spark_plugs_worn":      0.70,
			"plug_wires_degraded":   0.60,
			"fuel_injector_clogged": 0.60,
			"vacuum_leak":           0.50,
			"normal":                0.02,
		},
		"stalling": {
			"crankshaft_position_sensor_failure": 0.70,
			"idle_air_control_failure":           0.60,
			"throttle_body_dirty":                0.50,
			"fuel_pump_weak":                     0.50,
			"vacuum_leak":                        0.40,
			"normal":                             0.02,
		},
		"hard_start": {
			"fuel_pump_weak":                     0.60,
			"fuel_injector_leaking":              0.55,
			"spark_plugs_worn":                   0.50,
			"crankshaft_position_sensor_failure": 0.50,
			"battery_degraded":                   0.45,
			"normal":                             0.03,
		},
		"long_crank": {
			"fuel_pressure_regulator_failure":   0.60,
			"camshaft_position_sensor_failure":  0.60,
			"fuel_pump_weak":                    0.60,
			"battery_degraded":                  0.40,
			"normal":                            0.04,
		},
		"no_start_no_crank": {
			"starter_motor_failure":         0.70,
			"starter_solenoid_failure":      0.70,
			"battery_degraded":              0.60,
			"battery_terminal_corrosion":    0.55,
			"neutral_safety_switch_failure": 0.50,
			"normal":                        0.01,
		},
		"no_start_cranks": {
			"fuel_pump_weak":                     0.70,
			"crankshaft_position_sensor_failure": 0.70,
			"fuel_filter_clogged":                0.40,
			"normal":                             0.01,
		},
		"clicking_on_start": {
			"starter_solenoid_failure":   0.80,
			"battery_degraded":           0.70,
			"battery_terminal_corrosion": 0.65,
			"starter_motor_failure":      0.40,
			"normal":                     0.01,
		},
		"slow_crank": {
			"battery_degraded":           0.80,
			"starter_motor_failure":      0.60,
			"battery_terminal_corrosion": 0.50,
			"normal":                     0.02,
		},
		"poor_fuel_economy": {
			"o2_sensor_failed":        0.60,
			"maf_sensor_contaminated": 0.50,
			"fuel_injector_leaking":   0.50,
			"spark_plugs_worn":        0.45,
			"brake_caliper_sticking":  0.40,
			"vacuum_leak":             0.40,
			"normal":                  0.05,
		},
		"lack_of_power": {
			"catalytic_converter_clogged": 0.70,
			"fuel_filter_clogged":         0.60,
			"turbo_boost_leak":            0.60,
			"fuel_pump_weak":              0.55,
			"maf_sensor_contaminated":     0.50,
			"timing_chain_stretched":      0.40,
			"normal":                      0.03,
		},
		"battery_warning_light": {
			"alternator_failure":        0.85,
			"voltage_regulator_failure": 0.60,
			"serpentine_belt_worn":      0.50,
			"normal":                    0.02,
		},
		"dim_lights": {
			"alternator_failure":         0.70,
			"battery_degraded":           0.60,
			"alternator_diode_leak":      0.50,
			"battery_terminal_corrosion": 0.40,
			"normal":                     0.03,
		},
		"flickering_lights": {
			"alternator_diode_leak":      0.75,
			"voltage_regulator_failure":  0.55,
			"battery_terminal_corrosion": 0.40,
			"normal":                     0.03,
		},
		"squealing_noise_belt": {
			"serpentine_belt_worn": 0.90,
			"water_pump_failure":   0.30,
			"normal":               0.03,
		},
		"whining_noise_acceleration": {
			"turbo_bearing_wear":       0.60,
			"fuel_pump_weak":           0.50,
			"torque_converter_failure": 0.30,
			"normal":                   0.05,
		},
		"grinding_noise_braking": {
			"brake_pads_worn":    0.90,
			"brake_rotor_warped": 0.30,
			"normal":             0.01,
		},
		"brake_pedal_pulsation": {
			"brake_rotor_warped":             0.90,
			"abs_wheel_speed_sensor_failure": 0.30,
			"normal":                         0.02,
		},
		"brake_pedal_soft": {
			"brake_fluid_leak":              0.80,
			"brake_master_cylinder_failure": 0.70,
			"normal":                        0.01,
		},
		"brake_pedal_sinks": {
			"brake_master_cylinder_failure": 0.90,
			"brake_fluid_leak":              0.50,
			"normal":                        0.01,
		},
		"vehicle_pulls_braking": {
			"brake_caliper_sticking": 0.80,
			"brake_fluid_leak":       0.30,
			"normal":                 0.02,
		},
		"abs_light_on": {
			"abs_wheel_speed_sensor_failure": 0.85,
			"normal":                         0.03,
		},
		"delayed_shifting": {
			"transmission_fluid_low": 0.80,
			"shift_solenoid_failure": 0.60,
			"transmission_slipping":  0.50,
			"normal":                 0.02,
		},
		"harsh_shifting": {
			"shift_solenoid_failure": 0.75,
			"transmission_fluid_low": 0.40,
			"transmission_slipping":  0.40,
			"normal":                 0.03,
		},
		"transmission_slipping_felt": {
			"transmission_slipping":    0.85,
			"transmission_fluid_low":   0.60,
			"torque_converter_failure": 0.50,
			"normal":                   0.01,
		},
		"shudder_at_lockup": {
			"torque_converter_failure": 0.85,
			"transmission_fluid_low":   0.30,
			"normal":                   0.02,
		},
		"rattle_on_startup": {
			"vvt_actuator_failure":   0.80,
			"timing_chain_stretched": 0.70,
			"normal":                 0.03,
		},
		"reduced_boost_felt": {
			"turbo_boost_leak":      0.80,
			"turbo_wastegate_stuck": 0.65,
			"intercooler_leak":      0.60,
			"turbo_bearing_wear":    0.50,
			"normal":                0.02,
		},
		"hissing_under_load": {
			"turbo_boost_leak": 0.85,
			"intercooler_leak": 0.60,
			"vacuum_leak":      0.50,
			"normal":           0.02,
		},
		"blue_smoke_exhaust": {
			"turbo_bearing_wear": 0.70,
			"pcv_valve_stuck":    0.50,
			"normal":             0.02,
		},
		"oil_pressure_warning": {
			"oil_pressure_low": 0.90,
			"normal":           0.01,
		},
		"isolation_fault_warning": {
			"tesla_hv_isolation_fault": 0.95,
			"normal":                   0.01,
		},
		"reduced_range": {
			"hv_battery_cell_imbalance": 0.70,
			"brake_caliper_sticking":    0.30,
			"normal":                    0.05,
		},

		// ---- Test-result evidence ----
		"fan_not_running_when_hot": {
			"cooling_fan_not_operating": 0.95,
			"normal":                    0.02,
		},
		"cooling_system_pressure_loss": {
			"coolant_leak":        0.85,
			"head_gasket_failure": 0.60,
			"water_pump_failure":  0.40,
			"normal":              0.02,
		},
		"block_test_positive": {
			"head_gasket_failure": 0.97,
			"normal":              0.01,
		},
		"smoke_test_reveals_leak": {
			"vacuum_leak":            0.95,
			"evap_purge_valve_stuck": 0.40,
			"pcv_valve_stuck":        0.30,
			"normal":                 0.01,
		},
		"fuel_pressure_test_low": {
			"fuel_pump_weak":                  0.90,
			"fuel_filter_clogged":             0.75,
			"fuel_pressure_regulator_failure": 0.50,
			"normal":                          0.02,
		},
		"compression_low_cylinder": {
			"head_gasket_failure":    0.70,
			"timing_chain_stretched": 0.40,
			"normal":                 0.02,
		},
		"spark_test_no_spark": {
			"ignition_coil_failure":              0.85,
			"crankshaft_position_sensor_failure": 0.60,
			"plug_wires_degraded":                0.50,
			"normal":                             0.01,
		},
		"coil_swap_moves_misfire": {
			"ignition_coil_failure": 0.95,
			"normal":                0.01,
		},
		"voltage_drop_test_fail": {
			"battery_terminal_corrosion": 0.85,
			"starter_motor_failure":      0.45,
			"normal":                     0.02,
		},
		"injector_balance_test_fail": {
			"fuel_injector_clogged": 0.90,
			"fuel_injector_leaking": 0.60,
			"normal":                0.02,
		},
		"stall_speed_abnormal": {
			"torque_converter_failure": 0.90,
			"transmission_slipping":    0.40,
			"normal":                   0.02,
		},
		"line_pressure_low": {
			"transmission_slipping":  0.80,
			"transmission_fluid_low": 0.70,
			"shift_solenoid_failure": 0.40,
			"normal":                 0.02,
		},
		"rotor_runout_high": {
			"brake_rotor_warped": 0.95,
			"normal":             0.01,
		},
		"wheel_temp_uneven": {
			"brake_caliper_sticking": 0.90,
			"normal":                 0.02,
		},
		"cam_correlation_error": {
			"timing_chain_stretched":           0.85,
			"vvt_actuator_failure":             0.60,
			"camshaft_position_sensor_failure": 0.50,
			"normal":                           0.01,
		},
		"cam_angle_response_slow": {
			"vvt_solenoid_failure": 0.85,
			"vvt_actuator_failure": 0.60,
			"oil_pressure_low":     0.40,
			"normal":               0.02,
		},
		"charge_pipe_pressure_drop": {
			"turbo_boost_leak": 0.90,
			"intercooler_leak": 0.70,
			"normal":           0.01,
		},
		"backpressure_high": {
			"catalytic_converter_clogged": 0.95,
			"normal":                      0.01,
		},

		// ---- DTC-derived evidence ----
		"dtc_P0128": {
			"thermostat_stuck_open": 0.90,
			"ect_sensor_failed_low": 0.60,
			"coolant_leak":          0.30,
			"normal":                0.02,
		},
		"dtc_P0117": {
			"ect_sensor_failed_high": 0.85,
			"normal":                 0.03,
		},
		"dtc_P0118": {
			"ect_sensor_failed_low": 0.85,
			"normal":                0.03,
		},
		"dtc_P0217": {
			"thermostat_stuck_closed":   0.70,
			"cooling_fan_not_operating": 0.70,
			"water_pump_failure":        0.60,
			"radiator_clogged":          0.60,
			"coolant_leak":              0.50,
			"normal":                    0.01,
		},
		"dtc_fan_circuit": {
			"cooling_fan_not_operating": 0.85,
			"normal":                    0.02,
		},
		"dtc_P0300": {
			"spark_plugs_worn":      0.70,
			"vacuum_leak":           0.65,
			"ignition_coil_failure": 0.50,
			"fuel_pump_weak":        0.50,
			"plug_wires_degraded":   0.45,
			"egr_valve_stuck":       0.35,
			"normal":                0.02,
		},
		"dtc_cylinder_misfire": {
			"ignition_coil_failure": 0.80,
			"spark_plugs_worn":      0.60,
			"fuel_injector_clogged": 0.60,
			"plug_wires_degraded":   0.50,
			"normal":                0.02,
		},
		"system_lean_bank1": {
			"vacuum_leak":             0.85,
			"maf_sensor_contaminated": 0.60,
			"fuel_pump_weak":          0.55,
			"fuel_filter_clogged":     0.50,
			"evap_purge_valve_stuck":  0.45,
			"o2_sensor_failed":        0.40,
			"pcv_valve_stuck":         0.40,
			"normal":                  0.02,
		},
		"system_lean_bank2": {
			"vacuum_leak":             0.85,
			"maf_sensor_contaminated": 0.60,
			"fuel_pump_weak":          0.55,
			"fuel_filter_clogged":     0.50,
			"evap_purge_valve_stuck":  0.45,
			"o2_sensor_failed":        0.40,
			"normal":                  0.02,
		},
		"system_rich_bank1": {
			"fuel_injector_leaking":           0.80,
			"fuel_pressure_regulator_failure": 0.70,
			"maf_sensor_contaminated":         0.50,
			"o2_sensor_failed":                0.45,
			"normal":                          0.02,
		},
		"system_rich_bank2": {
			"fuel_injector_leaking":           0.80,
			"fuel_pressure_regulator_failure": 0.70,
			"maf_sensor_contaminated":         0.50,
			"o2_sensor_failed":                0.45,
			"normal":                          0.02,
		},
		"dtc_maf_circuit": {
			"maf_sensor_contaminated": 0.85,
			"vacuum_leak":             0.35,
			"normal":                  0.02,
		},
		"dtc_o2_sensor": {
			"o2_sensor_failed": 0.85,
			"normal":           0.03,
		},
		"dtc_injector_circuit": {
			"fuel_injector_clogged": 0.70,
			"normal":                0.03,
		},
		"dtc_fuel_pressure_low": {
			"fuel_pump_weak":                  0.80,
			"fuel_filter_clogged":             0.70,
			"fuel_pressure_regulator_failure": 0.50,
			"normal":                          0.01,
		},
		"dtc_fuel_pressure_high": {
			"fuel_pressure_regulator_failure": 0.85,
			"normal":                          0.02,
		},
		"dtc_fuel_pump_circuit": {
			"fuel_pump_weak": 0.80,
			"normal":         0.02,
		},
		"dtc_egr_flow": {
			"egr_valve_stuck": 0.85,
			"normal":          0.02,
		},
		"dtc_cat_efficiency": {
			"catalytic_converter_clogged": 0.70,
			"o2_sensor_failed":            0.40,
			"normal":                      0.03,
		},
		"dtc_evap_leak": {
			"evap_purge_valve_stuck": 0.60,
			"normal":                 0.05,
		},
		"dtc_evap_purge": {
			"evap_purge_valve_stuck": 0.80,
			"normal":                 0.03,
		},
		"dtc_idle_control": {
			"idle_air_control_failure": 0.80,
			"throttle_body_dirty":      0.60,
			"vacuum_leak":              0.50,
			"normal":                   0.02,
		},
		"dtc_system_voltage_low": {
			"alternator_failure":        0.80,
			"battery_degraded":          0.55,
			"voltage_regulator_failure": 0.50,
			"serpentine_belt_worn":      0.40,
			"normal":                    0.02,
		},
		"dtc_system_voltage_high": {
			"voltage_regulator_failure": 0.90,
			"normal":                    0.01,
		},
		"dtc_alternator_circuit": {
			"alternator_failure":        0.85,
			"voltage_regulator_failure": 0.50,
			"normal":                    0.02,
		},
		"dtc_ckp_sensor": {
			"crankshaft_position_sensor_failure": 0.90,
			"timing_chain_stretched":             0.30,
			"normal":                             0.01,
		},
		"dtc_cmp_sensor": {
			"camshaft_position_sensor_failure": 0.85,
			"timing_chain_stretched":           0.35,
			"vvt_actuator_failure":             0.30,
			"normal":                           0.01,
		},
		"dtc_cam_correlation": {
			"timing_chain_stretched":           0.80,
			"vvt_actuator_failure":             0.60,
			"camshaft_position_sensor_failure": 0.40,
			"normal":                           0.01,
		},
		"dtc_vvt_performance": {
			"vvt_solenoid_failure":   0.80,
			"vvt_actuator_failure":   0.60,
			"oil_pressure_low":       0.40,
			"timing_chain_stretched": 0.35,
			"normal":                 0.01,
		},
		"dtc_vvt_solenoid_circuit": {
			"vvt_solenoid_failure": 0.90,
			"normal":               0.01,
		},
		"dtc_oil_pressure": {
			"oil_pressure_low": 0.85,
			"normal":           0.02,
		},
		"dtc_boost_underboost": {
			"turbo_boost_leak":      0.80,
			"turbo_wastegate_stuck": 0.60,
			"intercooler_leak":      0.60,
			"turbo_bearing_wear":    0.40,
			"normal":                0.01,
		},
		"dtc_boost_overboost": {
			"turbo_wastegate_stuck": 0.90,
			"normal":                0.01,
		},
		"dtc_turbo_actuator": {
			"turbo_wastegate_stuck": 0.75,
			"turbo_bearing_wear":    0.40,
			"normal":                0.02,
		},
		"dtc_trans_general": {
			"shift_solenoid_failure":   0.50,
			"transmission_slipping":    0.50,
			"transmission_fluid_low":   0.40,
			"torque_converter_failure": 0.40,
			"normal":                   0.02,
		},
		"dtc_gear_ratio": {
			"transmission_slipping":  0.80,
			"transmission_fluid_low": 0.50,
			"shift_solenoid_failure": 0.50,
			"normal":                 0.01,
		},
		"dtc_tcc": {
			"torque_converter_failure": 0.85,
			"transmission_fluid_low":   0.35,
			"normal":                   0.01,
		},
		"dtc_shift_solenoid": {
			"shift_solenoid_failure": 0.90,
			"normal":                 0.01,
		},
		"dtc_wheel_speed_sensor": {
			"abs_wheel_speed_sensor_failure": 0.90,
			"normal":                         0.01,
		},
		"dtc_insulation_resistance_low": {
			"tesla_hv_isolation_fault": 0.98,
			"normal":                   0.005,
		},
		"dtc_hv_cell_imbalance": {
			"hv_battery_cell_imbalance": 0.90,
			"normal":                    0.01,
		},
		"dtc_dcdc_fault": {
			"dcdc_converter_failure": 0.90,
			"normal":                 0.01,
		},
		"dtc_lost_comm": {
			"battery_terminal_corrosion": 0.40,
			"dcdc_converter_failure":     0.30,
			"normal":                     0.10,
		},
	}
}
