package knowledge

import "regexp"

// DTCPattern matches standard OBD-II trouble codes. Manufacturer alert codes
// (e.g. Tesla BMS_F035) do not match and are looked up verbatim instead.
var DTCPattern = regexp.MustCompile(`^[PBCU][0-9A-Z]{4}$`)

// dtcTable maps recognized trouble codes to evidence tokens. Codes outside
// this table are evidence-silent: they are reported back to the caller but
// produce no belief change.
func dtcTable() map[string]DTCInfo {
	return map[string]DTCInfo{
		// VVT / cam timing.
		"P0010": {Token: "dtc_vvt_solenoid_circuit", System: SystemVVT, Description: "Camshaft position actuator circuit (bank 1)"},
		"P0011": {Token: "dtc_vvt_performance", System: SystemVVT, Description: "Camshaft position timing over-advanced (bank 1)"},
		"P0012": {Token: "dtc_vvt_performance", System: SystemVVT, Description: "Camshaft position timing over-retarded (bank 1)"},
		"P0013": {Token: "dtc_vvt_solenoid_circuit", System: SystemVVT, Description: "Exhaust camshaft actuator circuit (bank 1)"},
		"P0014": {Token: "dtc_vvt_performance", System: SystemVVT, Description: "Exhaust camshaft timing over-advanced (bank 1)"},
		"P0020": {Token: "dtc_vvt_solenoid_circuit", System: SystemVVT, Description: "Camshaft position actuator circuit (bank 2)"},
		"P0021": {Token: "dtc_vvt_performance", System: SystemVVT, Description: "Camshaft position timing over-advanced (bank 2)"},
		"P0022": {Token: "dtc_vvt_performance", System: SystemVVT, Description: "Camshaft position timing over-retarded (bank 2)"},
		"P0016": {Token: "dtc_cam_correlation", System: SystemVVT, Description: "Crankshaft/camshaft position correlation (bank 1 sensor A)"},
		"P0017": {Token: "dtc_cam_correlation", System: SystemVVT, Description: "Crankshaft/camshaft position correlation (bank 1 sensor B)"},
		"P0018": {Token: "dtc_cam_correlation", System: SystemVVT, Description: "Crankshaft/camshaft position correlation (bank 2 sensor A)"},
		"P0019": {Token: "dtc_cam_correlation", System: SystemVVT, Description: "Crankshaft/camshaft position correlation (bank 2 sensor B)"},

		// Fuel pressure and delivery.
		"P0087": {Token: "dtc_fuel_pressure_low", System: SystemFuel, Description: "Fuel rail pressure too low"},
		"P0088": {Token: "dtc_fuel_pressure_high", System: SystemFuel, Description: "Fuel rail pressure too high"},
		"P0090": {Token: "dtc_fuel_pressure_low", System: SystemFuel, Description: "Fuel pressure regulator control circuit"},
		"P0230": {Token: "dtc_fuel_pump_circuit", System: SystemFuel, Description: "Fuel pump primary circuit"},
		"P0231": {Token: "dtc_fuel_pump_circuit", System: SystemFuel, Description: "Fuel pump secondary circuit low"},
		"P0232": {Token: "dtc_fuel_pump_circuit", System: SystemFuel, Description: "Fuel pump secondary circuit high"},

		// Air metering.
		"P0101": {Token: "dtc_maf_circuit", System: SystemFuel, Description: "MAF sensor range/performance"},
		"P0102": {Token: "dtc_maf_circuit", System: SystemFuel, Description: "MAF sensor circuit low input"},
		"P0103": {Token: "dtc_maf_circuit", System: SystemFuel, Description: "MAF sensor circuit high input"},
		"P0104": {Token: "dtc_maf_circuit", System: SystemFuel, Description: "MAF sensor circuit intermittent"},

		// Cooling.
		"P0117": {Token: "dtc_P0117", System: SystemCooling, Description: "ECT sensor circuit low input"},
		"P0118": {Token: "dtc_P0118", System: SystemCooling, Description: "ECT sensor circuit high input"},
		"P0125": {Token: "dtc_P0128", System: SystemCooling, Description: "Insufficient coolant temperature for closed-loop"},
		"P0126": {Token: "dtc_P0128", System: SystemCooling, Description: "Insufficient coolant temperature for stable operation"},
		"P0128": {Token: "dtc_P0128", System: SystemCooling, Description: "Coolant temperature below thermostat regulating temperature"},
		"P0217": {Token: "dtc_P0217", System: SystemCooling, Description: "Engine overheat condition"},
		"P0480": {Token: "dtc_fan_circuit", System: SystemCooling, Description: "Cooling fan 1 control circuit"},
		"P0481": {Token: "dtc_fan_circuit", System: SystemCooling, Description: "Cooling fan 2 control circuit"},
		"P0483": {Token: "dtc_fan_circuit", System: SystemCooling, Description: "Cooling fan rationality check"},

		// Oxygen sensors.
		"P0130": {Token: "dtc_o2_sensor", System: SystemFuel, Description: "O2 sensor circuit (bank 1 sensor 1)"},
		"P0131": {Token: "dtc_o2_sensor", System: SystemFuel, Description: "O2 sensor circuit low voltage (bank 1 sensor 1)"},
		"P0132": {Token: "dtc_o2_sensor", System: SystemFuel, Description: "O2 sensor circuit high voltage (bank 1 sensor 1)"},
		"P0133": {Token: "dtc_o2_sensor", System: SystemFuel, Description: "O2 sensor slow response (bank 1 sensor 1)"},
		"P0134": {Token: "dtc_o2_sensor", System: SystemFuel, Description: "O2 sensor no activity detected (bank 1 sensor 1)"},
		"P0135": {Token: "dtc_o2_sensor", System: SystemFuel, Description: "O2 sensor heater circuit (bank 1 sensor 1)"},
		"P0137": {Token: "dtc_o2_sensor", System: SystemFuel, Description: "O2 sensor circuit low voltage (bank 1 sensor 2)"},
		"P0138": {Token: "dtc_o2_sensor", System: SystemFuel, Description: "O2 sensor circuit high voltage (bank 1 sensor 2)"},
		"P0140": {Token: "dtc_o2_sensor", System: SystemFuel, Description: "O2 sensor no activity detected (bank 1 sensor 2)"},
		"P0141": {Token: "dtc_o2_sensor", System: SystemFuel, Description: "O2 sensor heater circuit (bank 1 sensor 2)"},

		// Fuel trim.
		"P0171": {Token: "system_lean_bank1", System: SystemFuel, Description: "System too lean (bank 1)"},
		"P0172": {Token: "system_rich_bank1", System: SystemFuel, Description: "System too rich (bank 1)"},
		"P0174": {Token: "system_lean_bank2", System: SystemFuel, Description: "System too lean (bank 2)"},
		"P0175": {Token: "system_rich_bank2", System: SystemFuel, Description: "System too rich (bank 2)"},

		// Injector circuits.
		"P0201": {Token: "dtc_injector_circuit", System: SystemFuel, Description: "Injector circuit cylinder 1"},
		"P0202": {Token: "dtc_injector_circuit", System: SystemFuel, Description: "Injector circuit cylinder 2"},
		"P0203": {Token: "dtc_injector_circuit", System: SystemFuel, Description: "Injector circuit cylinder 3"},
		"P0204": {Token: "dtc_injector_circuit", System: SystemFuel, Description: "Injector circuit cylinder 4"},
		"P0205": {Token: "dtc_injector_circuit", System: SystemFuel, Description: "Injector circuit cylinder 5"},
		"P0206": {Token: "dtc_injector_circuit", System: SystemFuel, Description: "Injector circuit cylinder 6"},
		"P0207": {Token: "dtc_injector_circuit", System: SystemFuel, Description: "Injector circuit cylinder 7"},
		"P0208": {Token: "dtc_injector_circuit", System: SystemFuel, Description: "Injector circuit cylinder 8"},

		// Boost control.
		"P0234": {Token: "dtc_boost_overboost", System: SystemTurbo, Description: "Turbocharger overboost condition"},
		"P0299": {Token: "dtc_boost_underboost", System: SystemTurbo, Description: "Turbocharger underboost condition"},
		"P0046": {Token: "dtc_turbo_actuator", System: SystemTurbo, Description: "Turbo boost control solenoid range/performance"},
		"P2263": {Token: "dtc_turbo_actuator", System: SystemTurbo, Description: "Turbo boost system performance"},

		// Misfires.
		"P0300": {Token: "dtc_P0300", System: SystemIgnition, Description: "Random/multiple cylinder misfire detected"},
		"P0301": {Token: "dtc_cylinder_misfire", System: SystemIgnition, Description: "Cylinder 1 misfire detected"},
		"P0302": {Token: "dtc_cylinder_misfire", System: SystemIgnition, Description: "Cylinder 2 misfire detected"},
		"P0303": {Token: "dtc_cylinder_misfire", System: SystemIgnition, Description: "Cylinder 3 misfire detected"},
		"P0304": {Token: "dtc_cylinder_misfire", System: SystemIgnition, Description: "Cylinder 4 misfire detected"},
		"P0305": {Token: "dtc_cylinder_misfire", System: SystemIgnition, Description: "Cylinder 5 misfire detected"},
		"P0306": {Token: "dtc_cylinder_misfire", System: SystemIgnition, Description: "Cylinder 6 misfire detected"},
		"P0307": {Token: "dtc_cylinder_misfire", System: SystemIgnition, Description: "Cylinder 7 misfire detected"},
		"P0308": {Token: "dtc_cylinder_misfire", System: SystemIgnition, Description: "Cylinder 8 misfire detected"},

		// Crank/cam position sensors.
		"P0335": {Token: "dtc_ckp_sensor", System: SystemIgnition, Description: "Crankshaft position sensor circuit"},
		"P0336": {Token: "dtc_ckp_sensor", System: SystemIgnition, Description: "Crankshaft position sensor range/performance"},
		"P0339": {Token: "dtc_ckp_sensor", System: SystemIgnition, Description: "Crankshaft position sensor intermittent"},
		"P0340": {Token: "dtc_cmp_sensor", System: SystemIgnition, Description: "Camshaft position sensor circuit"},
		"P0341": {Token: "dtc_cmp_sensor", System: SystemIgnition, Description: "Camshaft position sensor range/performance"},
		"P0345": {Token: "dtc_cmp_sensor", System: SystemIgnition, Description: "Camshaft position sensor circuit (bank 2)"},

		// EGR.
		"P0401": {Token: "dtc_egr_flow", System: SystemEmissions, Description: "EGR insufficient flow detected"},
		"P0402": {Token: "dtc_egr_flow", System: SystemEmissions, Description: "EGR excessive flow detected"},
		"P0403": {Token: "dtc_egr_flow", System: SystemEmissions, Description: "EGR control circuit"},
		"P0404": {Token: "dtc_egr_flow", System: SystemEmissions, Description: "EGR control range/performance"},

		// Catalyst.
		"P0420": {Token: "dtc_cat_efficiency", System: SystemEmissions, Description: "Catalyst efficiency below threshold (bank 1)"},
		"P0430": {Token: "dtc_cat_efficiency", System: SystemEmissions, Description: "Catalyst efficiency below threshold (bank 2)"},

		// EVAP.
		"P0441": {Token: "dtc_evap_purge", System: SystemEmissions, Description: "EVAP incorrect purge flow"},
		"P0442": {Token: "dtc_evap_leak", System: SystemEmissions, Description: "EVAP small leak detected"},
		"P0443": {Token: "dtc_evap_purge", System: SystemEmissions, Description: "EVAP purge control valve circuit"},
		"P0446": {Token: "dtc_evap_purge", System: SystemEmissions, Description: "EVAP vent control circuit"},
		"P0455": {Token: "dtc_evap_leak", System: SystemEmissions, Description: "EVAP large leak detected"},
		"P0456": {Token: "dtc_evap_leak", System: SystemEmissions, Description: "EVAP very small leak detected"},

		// Idle control.
		"P0505": {Token: "dtc_idle_control", System: SystemGeneral, Description: "Idle control system malfunction"},
		"P0506": {Token: "dtc_idle_control", System: SystemGeneral, Description: "Idle RPM lower than expected"},
		"P0507": {Token: "dtc_idle_control", System: SystemGeneral, Description: "Idle RPM higher than expected"},

		// Oil pressure.
		"P0520": {Token: "dtc_oil_pressure", System: SystemVVT, Description: "Oil pressure sensor circuit"},
		"P0521": {Token: "dtc_oil_pressure", System: SystemVVT, Description: "Oil pressure sensor range/performance"},
		"P0522": {Token: "dtc_oil_pressure", System: SystemVVT, Description: "Oil pressure sensor low voltage"},
		"P0523": {Token: "dtc_oil_pressure", System: SystemVVT, Description: "Oil pressure sensor high voltage"},
		"P0524": {Token: "dtc_oil_pressure", System: SystemVVT, Description: "Engine oil pressure too low"},

		// Charging.
		"P0562": {Token: "dtc_system_voltage_low", System: SystemCharging, Description: "System voltage low"},
		"P0563": {Token: "dtc_system_voltage_high", System: SystemCharging, Description: "System voltage high"},
		"P0620": {Token: "dtc_alternator_circuit", System: SystemCharging, Description: "Generator control circuit"},
		"P0621": {Token: "dtc_alternator_circuit", System: SystemCharging, Description: "Generator lamp L control circuit"},
		"P0622": {Token: "dtc_alternator_circuit", System: SystemCharging, Description: "Generator field F control circuit"},

		// Transmission.
		"P0700": {Token: "dtc_trans_general", System: SystemTransmission, Description: "Transmission control system malfunction"},
		"P0715": {Token: "dtc_trans_general", System: SystemTransmission, Description: "Input/turbine speed sensor circuit"},
		"P0720": {Token: "dtc_trans_general", System: SystemTransmission, Description: "Output speed sensor circuit"},
		"P0730": {Token: "dtc_gear_ratio", System: SystemTransmission, Description: "Incorrect gear ratio"},
		"P0731": {Token: "dtc_gear_ratio", System: SystemTransmission, Description: "Gear 1 incorrect ratio"},
		"P0732": {Token: "dtc_gear_ratio", System: SystemTransmission, Description: "Gear 2 incorrect ratio"},
		"P0733": {Token: "dtc_gear_ratio", System: SystemTransmission, Description: "Gear 3 incorrect ratio"},
		"P0734": {Token: "dtc_gear_ratio", System: SystemTransmission, Description: "Gear 4 incorrect ratio"},
		"P0740": {Token: "dtc_tcc", System: SystemTransmission, Description: "Torque converter clutch circuit malfunction"},
		"P0741": {Token: "dtc_tcc", System: SystemTransmission, Description: "Torque converter clutch stuck off"},
		"P0750": {Token: "dtc_shift_solenoid", System: SystemTransmission, Description: "Shift solenoid A malfunction"},
		"P0753": {Token: "dtc_shift_solenoid", System: SystemTransmission, Description: "Shift solenoid A electrical"},
		"P0755": {Token: "dtc_shift_solenoid", System: SystemTransmission, Description: "Shift solenoid B malfunction"},
		"P0758": {Token: "dtc_shift_solenoid", System: SystemTransmission, Description: "Shift solenoid B electrical"},

		// ABS wheel speed sensors.
		"C0035": {Token: "dtc_wheel_speed_sensor", System: SystemBrakes, Description: "Left front wheel speed sensor circuit"},
		"C0040": {Token: "dtc_wheel_speed_sensor", System: SystemBrakes, Description: "Right front wheel speed sensor circuit"},
		"C0045": {Token: "dtc_wheel_speed_sensor", System: SystemBrakes, Description: "Left rear wheel speed sensor circuit"},
		"C0050": {Token: "dtc_wheel_speed_sensor", System: SystemBrakes, Description: "Right rear wheel speed sensor circuit"},

		// Network.
		"U0100": {Token: "dtc_lost_comm", System: SystemGeneral, Description: "Lost communication with ECM/PCM"},
		"U0101": {Token: "dtc_lost_comm", System: SystemGeneral, Description: "Lost communication with TCM"},
		"U0121": {Token: "dtc_lost_comm", System: SystemGeneral, Description: "Lost communication with ABS module"},

		// Body codes.
		"B1317": {Token: "dtc_system_voltage_high", System: SystemCharging, Description: "Battery voltage high"},
		"B1318": {Token: "dtc_system_voltage_low", System: SystemCharging, Description: "Battery voltage low"},

		// Manufacturer HV alerts (Tesla-style, non-OBD format).
		"BMS_F035": {Token: "dtc_insulation_resistance_low", System: SystemHighVoltage, Description: "HV isolation resistance below limit"},
		"BMS_A035": {Token: "dtc_insulation_resistance_low", System: SystemHighVoltage, Description: "HV isolation degradation warning"},
		"BMS_F104": {Token: "dtc_hv_cell_imbalance", System: SystemHighVoltage, Description: "HV brick voltage imbalance"},
		"PCS_A073": {Token: "dtc_dcdc_fault", System: SystemHighVoltage, Description: "DC-DC converter output fault"},
	}
}
