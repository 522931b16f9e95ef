package knowledge

// Vehicle systems used to group failures and DTCs.
const (
	SystemCooling      = "cooling"
	SystemFuel         = "fuel"
	SystemIgnition     = "ignition"
	SystemCharging     = "charging"
	SystemStarter      = "starter"
	SystemTransmission = "transmission"
	SystemBrakes       = "brakes"
	SystemTurbo        = "turbo"
	SystemVVT          = "vvt"
	SystemEmissions    = "emissions"
	SystemHighVoltage  = "high_voltage"
	SystemGeneral      = "general"
)

// FailureNormal is the no-fault hypothesis. It competes in every belief
// distribution so that weak or contradictory evidence resolves to "nothing
// actionably wrong" instead of the least-unlikely failure.
const FailureNormal = "normal"

// HV isolation failure IDs. Evidence pointing at these is safety-critical
// and bypasses ordinary Bayesian blending (see the reason package).
const (
	FailureHVIsolation = "tesla_hv_isolation_fault"
)

func failureCatalog() []Failure {
	return []Failure{
		// Cooling.
		{
			ID:                  "thermostat_stuck_closed",
			System:              SystemCooling,
			Description:         "Thermostat stuck closed — coolant cannot circulate through the radiator",
			RepairActions:       []string{"Replace thermostat and gasket", "Bleed cooling system", "Verify fan operation after repair"},
			DiscriminatingTests: []string{"Check upper radiator hose temperature at operating temp", "Infrared thermometer across thermostat housing"},
			CostEstimate:        "$150-$350",
		},
		{
			ID:                  "thermostat_stuck_open",
			System:              SystemCooling,
			Description:         "Thermostat stuck open — engine never reaches operating temperature",
			RepairActions:       []string{"Replace thermostat and gasket", "Clear P0128 and verify warm-up profile"},
			DiscriminatingTests: []string{"Time to reach operating temperature vs spec", "Scan coolant temp during warm-up"},
			CostEstimate:        "$150-$350",
		},
		{
			ID:                  "water_pump_failure",
			System:              SystemCooling,
			Description:         "Water pump impeller or bearing failure — inadequate coolant flow",
			RepairActions:       []string{"Replace water pump", "Replace drive belt if contaminated", "Flush cooling system"},
			DiscriminatingTests: []string{"Check for weep-hole leakage", "Verify coolant flow at filler neck with engine warm"},
			CostEstimate:        "$400-$900",
		},
		{
			ID:                  "radiator_clogged",
			System:              SystemCooling,
			Description:         "Radiator internally restricted or externally blocked",
			RepairActions:       []string{"Flush or replace radiator", "Clean external fins and check airflow path"},
			DiscriminatingTests: []string{"Infrared scan for cold spots across radiator core"},
			CostEstimate:        "$300-$800",
		},
		{
			ID:                  "cooling_fan_not_operating",
			System:              SystemCooling,
			Description:         "Electric cooling fan not running — overheating at idle and low speed",
			RepairActions:       []string{"Test fan motor, relay, and fuse", "Replace failed component", "Verify fan control module commands"},
			DiscriminatingTests: []string{"Observe fan with engine at operating temperature", "Command fan on with scan tool"},
			CostEstimate:        "$100-$500",
		},
		{
			ID:                  "coolant_leak",
			System:              SystemCooling,
			Description:         "External coolant leak — hose, clamp, radiator, or heater core",
			RepairActions:       []string{"Pressure test cooling system", "Repair identified leak", "Refill and bleed system"},
			DiscriminatingTests: []string{"Cooling system pressure test", "UV dye trace"},
			CostEstimate:        "$100-$600",
		},
		{
			ID:                  "head_gasket_failure",
			System:              SystemCooling,
			Description:         "Head gasket breach — combustion gases entering cooling system or coolant entering cylinders",
			RepairActions:       []string{"Confirm with block test before teardown", "Replace head gasket, resurface head as needed", "Inspect head for warpage and cracks"},
			DiscriminatingTests: []string{"Combustion gas block test on coolant", "Cylinder leak-down test"},
			CostEstimate:        "$1200-$2500",
		},
		{
			ID:                  "ect_sensor_failed_low",
			System:              SystemCooling,
			Description:         "Engine coolant temperature sensor reading falsely low",
			RepairActions:       []string{"Compare ECT reading to infrared measurement", "Replace ECT sensor", "Inspect connector and wiring"},
			DiscriminatingTests: []string{"ECT vs IR thermometer comparison at operating temp"},
			CostEstimate:        "$80-$200",
		},
		{
			ID:                  "ect_sensor_failed_high",
			System:              SystemCooling,
			Description:         "Engine coolant temperature sensor reading falsely high",
			RepairActions:       []string{"Compare ECT reading to infrared measurement", "Replace ECT sensor"},
			DiscriminatingTests: []string{"ECT vs IR thermometer comparison at operating temp"},
			CostEstimate:        "$80-$200",
		},
		{
			ID:                  "heater_core_clogged",
			System:              SystemCooling,
			Description:         "Heater core restricted — no cabin heat with normal engine temperature",
			RepairActions:       []string{"Flush heater core", "Replace heater core if flush fails"},
			DiscriminatingTests: []string{"Compare heater inlet and outlet hose temperatures"},
			CostEstimate:        "$100-$1000",
		},

		// Fuel.
		{
			ID:                  "fuel_pump_weak",
			System:              SystemFuel,
			Description:         "Fuel pump output degraded — low pressure under load",
			RepairActions:       []string{"Measure fuel pressure and volume", "Replace fuel pump module", "Check pump wiring voltage drop"},
			DiscriminatingTests: []string{"Fuel pressure test at idle and under load", "Fuel volume test"},
			CostEstimate:        "$400-$900",
		},
		{
			ID:                  "fuel_filter_clogged",
			System:              SystemFuel,
			Description:         "Fuel filter restricted — pressure drop under demand",
			RepairActions:       []string{"Replace fuel filter", "Retest fuel pressure under load"},
			DiscriminatingTests: []string{"Fuel pressure before and after filter"},
			CostEstimate:        "$50-$150",
		},
		{
			ID:                  "fuel_injector_clogged",
			System:              SystemFuel,
			Description:         "One or more injectors restricted — lean cylinder, misfire under load",
			RepairActions:       []string{"Injector balance test", "Clean or replace affected injectors"},
			DiscriminatingTests: []string{"Injector balance / drop test", "Cylinder-specific misfire counts"},
			CostEstimate:        "$150-$600",
		},
		{
			ID:                  "fuel_injector_leaking",
			System:              SystemFuel,
			Description:         "Injector leaking — rich running, fuel dilution, hard hot start",
			RepairActions:       []string{"Leak-down check on fuel rail", "Replace leaking injectors", "Change engine oil if diluted"},
			DiscriminatingTests: []string{"Fuel rail pressure bleed-down after shutdown"},
			CostEstimate:        "$150-$600",
		},
		{
			ID:                  "fuel_pressure_regulator_failure",
			System:              SystemFuel,
			Description:         "Fuel pressure regulator stuck or leaking through vacuum reference",
			RepairActions:       []string{"Check vacuum line for fuel", "Replace regulator"},
			DiscriminatingTests: []string{"Fuel pressure response to vacuum change"},
			CostEstimate:        "$100-$300",
		},
		{
			ID:                  "vacuum_leak",
			System:              SystemFuel,
			Description:         "Unmetered air entering intake — lean condition, rough idle, high fuel trims",
			RepairActions:       []string{"Smoke test intake and vacuum lines", "Replace failed hose, gasket, or seal", "Clear codes and verify fuel trims return to normal"},
			DiscriminatingTests: []string{"Smoke test of intake system", "Fuel trim response to propane enrichment", "Fuel trims at idle vs 2500 RPM"},
			CostEstimate:        "$100-$400",
		},
		{
			ID:                  "maf_sensor_contaminated",
			System:              SystemFuel,
			Description:         "Mass air flow sensor contaminated — under-reports airflow",
			RepairActions:       []string{"Clean MAF element with MAF cleaner", "Replace sensor if cleaning does not restore readings"},
			DiscriminatingTests: []string{"MAF g/s at WOT vs expected for displacement", "Compare calculated vs measured load"},
			CostEstimate:        "$80-$400",
		},
		{
			ID:                  "o2_sensor_failed",
			System:              SystemFuel,
			Description:         "Oxygen sensor lazy or stuck — incorrect closed-loop fueling",
			RepairActions:       []string{"Check O2 response to forced rich/lean", "Replace sensor"},
			DiscriminatingTests: []string{"O2 switching frequency and amplitude test"},
			CostEstimate:        "$150-$400",
		},
		{
			ID:                  "evap_purge_valve_stuck",
			System:              SystemFuel,
			Description:         "EVAP purge valve stuck open — vacuum leak through charcoal canister circuit",
			RepairActions:       []string{"Pinch purge line and observe idle", "Replace purge valve"},
			DiscriminatingTests: []string{"Idle change with purge line blocked"},
			CostEstimate:        "$80-$250",
		},

		// Ignition.
		{
			ID:                  "ignition_coil_failure",
			System:              SystemIgnition,
			Description:         "Ignition coil weak or failed — cylinder-specific misfire",
			RepairActions:       []string{"Swap coil to another cylinder and confirm misfire follows", "Replace failed coil", "Inspect plug and boot for carbon tracking"},
			DiscriminatingTests: []string{"Coil swap test", "Secondary ignition waveform"},
			CostEstimate:        "$100-$300",
		},
		{
			ID:                  "spark_plugs_worn",
			System:              SystemIgnition,
			Description:         "Spark plugs worn beyond gap spec — random misfire, hard cold start",
			RepairActions:       []string{"Replace spark plugs with correct heat range", "Inspect removed plugs for fouling pattern"},
			DiscriminatingTests: []string{"Visual plug inspection", "Misfire counts before and after replacement"},
			CostEstimate:        "$80-$350",
		},
		{
			ID:                  "plug_wires_degraded",
			System:              SystemIgnition,
			Description:         "Plug wires high resistance or arcing — misfire worse in damp conditions",
			RepairActions:       []string{"Measure wire resistance", "Replace wire set"},
			DiscriminatingTests: []string{"Dark-test for arcing", "Wire resistance vs spec"},
			CostEstimate:        "$60-$200",
		},
		{
			ID:                  "crankshaft_position_sensor_failure",
			System:              SystemIgnition,
			Description:         "Crankshaft position sensor intermittent — stall, crank/no-start",
			RepairActions:       []string{"Scope CKP signal during crank", "Replace sensor", "Inspect reluctor for damage"},
			DiscriminatingTests: []string{"CKP waveform capture hot and cold"},
			CostEstimate:        "$150-$400",
		},
		{
			ID:                  "camshaft_position_sensor_failure",
			System:              SystemIgnition,
			Description:         "Camshaft position sensor faulty — long crank, runs in limp sync",
			RepairActions:       []string{"Scope CMP vs CKP correlation", "Replace sensor"},
			DiscriminatingTests: []string{"CMP/CKP correlation capture"},
			CostEstimate:        "$120-$350",
		},

		// Charging.
		{
			ID:                  "alternator_failure",
			System:              SystemCharging,
			Description:         "Alternator output failed or below spec — battery discharges while driving",
			RepairActions:       []string{"Charging system output test", "Replace alternator", "Load-test battery after repair"},
			DiscriminatingTests: []string{"Charging voltage at idle with loads on", "Output current vs rated"},
			CostEstimate:        "$400-$800",
		},
		{
			ID:                  "alternator_diode_leak",
			System:              SystemCharging,
			Description:         "Leaky alternator rectifier diode — AC ripple, parasitic drain, flickering lights",
			RepairActions:       []string{"Measure AC ripple at battery", "Replace alternator"},
			DiscriminatingTests: []string{"AC ripple voltage test", "Parasitic draw with alternator fuse pulled"},
			CostEstimate:        "$400-$800",
		},
		{
			ID:                  "voltage_regulator_failure",
			System:              SystemCharging,
			Description:         "Voltage regulator faulty — over- or under-charging",
			RepairActions:       []string{"Check charging voltage at varying RPM", "Replace regulator or alternator assembly"},
			DiscriminatingTests: []string{"Charging voltage sweep across RPM range"},
			CostEstimate:        "$200-$600",
		},
		{
			ID:                  "battery_degraded",
			System:              SystemCharging,
			Description:         "Battery capacity degraded — slow crank, fails load test",
			RepairActions:       []string{"Conductance and load test battery", "Replace battery", "Verify charging system afterwards"},
			DiscriminatingTests: []string{"Battery load test", "Open-circuit voltage after overnight rest"},
			CostEstimate:        "$150-$350",
		},
		{
			ID:                  "battery_terminal_corrosion",
			System:              SystemCharging,
			Description:         "Corroded or loose battery terminals — intermittent power loss, clicking on start",
			RepairActions:       []string{"Clean and torque terminals", "Apply terminal protectant"},
			DiscriminatingTests: []string{"Voltage drop across terminal connection during crank"},
			CostEstimate:        "$0-$50",
		},
		{
			ID:                  "serpentine_belt_worn",
			System:              SystemCharging,
			Description:         "Serpentine belt glazed or cracked — squeal, undercharging under load",
			RepairActions:       []string{"Replace belt", "Check tensioner and pulley alignment"},
			DiscriminatingTests: []string{"Belt wear gauge", "Squeal response to water spray"},
			CostEstimate:        "$80-$250",
		},

		// Starter.
		{
			ID:                  "starter_motor_failure",
			System:              SystemStarter,
			Description:         "Starter motor worn — slow crank or no crank with good battery",
			RepairActions:       []string{"Voltage drop test starter circuit", "Replace starter"},
			DiscriminatingTests: []string{"Starter current draw test"},
			CostEstimate:        "$300-$700",
		},
		{
			ID:                  "starter_solenoid_failure",
			System:              SystemStarter,
			Description:         "Starter solenoid contacts burned — single click, no crank",
			RepairActions:       []string{"Bypass test at solenoid", "Replace solenoid or starter assembly"},
			DiscriminatingTests: []string{"Voltage at solenoid S terminal during key crank"},
			CostEstimate:        "$150-$500",
		},
		{
			ID:                  "neutral_safety_switch_failure",
			System:              SystemStarter,
			Description:         "Neutral safety switch misadjusted or failed — no crank in park, cranks in neutral",
			RepairActions:       []string{"Try cranking in neutral", "Adjust or replace switch"},
			DiscriminatingTests: []string{"Crank attempt in neutral vs park"},
			CostEstimate:        "$100-$300",
		},

		// Transmission.
		{
			ID:                  "transmission_fluid_low",
			System:              SystemTransmission,
			Description:         "Transmission fluid low — delayed engagement, slipping when hot",
			RepairActions:       []string{"Check level and condition hot", "Find and repair leak", "Top up with correct fluid"},
			DiscriminatingTests: []string{"Fluid level check at operating temperature"},
			CostEstimate:        "$50-$300",
		},
		{
			ID:                  "transmission_slipping",
			System:              SystemTransmission,
			Description:         "Clutch pack wear — RPM flare between shifts, burnt fluid smell",
			RepairActions:       []string{"Check fluid for burnt smell and debris", "Line pressure test", "Rebuild or replace transmission"},
			DiscriminatingTests: []string{"Line pressure test", "Slip ratio monitoring under load"},
			CostEstimate:        "$1800-$4000",
		},
		{
			ID:                  "torque_converter_failure",
			System:              SystemTransmission,
			Description:         "Torque converter clutch shudder or stator failure",
			RepairActions:       []string{"Stall speed test", "Replace converter and flush cooler lines"},
			DiscriminatingTests: []string{"Stall speed test", "TCC apply shudder check at light throttle"},
			CostEstimate:        "$800-$1800",
		},
		{
			ID:                  "shift_solenoid_failure",
			System:              SystemTransmission,
			Description:         "Shift solenoid stuck or electrically failed — missing gears, harsh shifts",
			RepairActions:       []string{"Read solenoid codes and measure resistance", "Replace solenoid pack", "Change fluid and filter"},
			DiscriminatingTests: []string{"Solenoid resistance vs spec", "Commanded vs actual gear comparison"},
			CostEstimate:        "$300-$900",
		},

		// Brakes.
		{
			ID:                  "brake_pads_worn",
			System:              SystemBrakes,
			Description:         "Brake pads at or below minimum thickness — grinding, longer stops",
			RepairActions:       []string{"Replace pads", "Inspect rotors for scoring", "Check caliper slide pins"},
			DiscriminatingTests: []string{"Pad thickness measurement"},
			CostEstimate:        "$150-$400",
		},
		{
			ID:                  "brake_rotor_warped",
			System:              SystemBrakes,
			Description:         "Rotor thickness variation — pedal pulsation under braking",
			RepairActions:       []string{"Measure rotor runout and thickness variation", "Machine or replace rotors"},
			DiscriminatingTests: []string{"Dial-indicator runout measurement"},
			CostEstimate:        "$250-$600",
		},
		{
			ID:                  "brake_caliper_sticking",
			System:              SystemBrakes,
			Description:         "Caliper piston or slides seized — pull, drag, one hot wheel",
			RepairActions:       []string{"Check wheel temperatures after drive", "Rebuild or replace caliper", "Flush brake fluid"},
			DiscriminatingTests: []string{"Wheel temperature comparison after road test"},
			CostEstimate:        "$200-$500",
		},
		{
			ID:                  "brake_fluid_leak",
			System:              SystemBrakes,
			Description:         "Hydraulic leak — soft pedal, low fluid, visible wetness",
			RepairActions:       []string{"Locate leak at lines, hoses, calipers, master", "Replace failed component", "Bleed system"},
			DiscriminatingTests: []string{"Pressure hold test", "Visual trace of fluid path"},
			CostEstimate:        "$150-$600",
		},
		{
			ID:                  "abs_wheel_speed_sensor_failure",
			System:              SystemBrakes,
			Description:         "Wheel speed sensor signal lost — ABS light, false activation at low speed",
			RepairActions:       []string{"Scope sensor signal while spinning wheel", "Clean tone ring or replace sensor"},
			DiscriminatingTests: []string{"Live wheel-speed data comparison across wheels"},
			CostEstimate:        "$150-$350",
		},
		{
			ID:                  "brake_master_cylinder_failure",
			System:              SystemBrakes,
			Description:         "Master cylinder internal bypass — pedal sinks at stops with no external leak",
			RepairActions:       []string{"Pedal hold test", "Replace master cylinder", "Bleed system"},
			DiscriminatingTests: []string{"Pedal sink test with engine running"},
			CostEstimate:        "$300-$600",
		},

		// Turbo.
		{
			ID:                  "turbo_boost_leak",
			System:              SystemTurbo,
			Description:         "Charge pipe or coupler leak — low boost, hissing under load",
			RepairActions:       []string{"Pressure test charge system", "Replace failed coupler or clamp"},
			DiscriminatingTests: []string{"Charge pipe pressure test", "Boost vs commanded comparison"},
			CostEstimate:        "$100-$400",
		},
		{
			ID:                  "turbo_wastegate_stuck",
			System:              SystemTurbo,
			Description:         "Wastegate stuck or actuator failed — overboost or underboost",
			RepairActions:       []string{"Actuate wastegate with hand vacuum pump", "Replace actuator or free linkage"},
			DiscriminatingTests: []string{"Wastegate actuator stroke test"},
			CostEstimate:        "$200-$800",
		},
		{
			ID:                  "turbo_bearing_wear",
			System:              SystemTurbo,
			Description:         "Turbo shaft play — whine, oil consumption, smoke on decel",
			RepairActions:       []string{"Measure shaft radial and axial play", "Replace or rebuild turbo", "Find oil supply root cause"},
			DiscriminatingTests: []string{"Shaft play measurement", "Inspect compressor wheel for contact"},
			CostEstimate:        "$1200-$2500",
		},
		{
			ID:                  "intercooler_leak",
			System:              SystemTurbo,
			Description:         "Intercooler core leaking — boost loss proportional to load",
			RepairActions:       []string{"Pressure test intercooler", "Replace intercooler"},
			DiscriminatingTests: []string{"Intercooler pressure decay test"},
			CostEstimate:        "$300-$900",
		},

		// VVT / timing.
		{
			ID:                  "vvt_solenoid_failure",
			System:              SystemVVT,
			Description:         "VVT oil control solenoid stuck or clogged — cam timing error codes, rough idle",
			RepairActions:       []string{"Measure solenoid resistance and screen condition", "Replace solenoid", "Change oil with correct grade"},
			DiscriminatingTests: []string{"Commanded vs actual cam angle with scan tool"},
			CostEstimate:        "$150-$450",
		},
		{
			ID:                  "vvt_actuator_failure",
			System:              SystemVVT,
			Description:         "Cam phaser worn — rattle at startup, cam correlation codes",
			RepairActions:       []string{"Listen for phaser rattle on cold start", "Replace phaser and check timing components"},
			DiscriminatingTests: []string{"Cold-start rattle duration", "Cam angle response time"},
			CostEstimate:        "$600-$1500",
		},
		{
			ID:                  "timing_chain_stretched",
			System:              SystemVVT,
			Description:         "Timing chain stretched — crank/cam correlation fault, rattle, poor running",
			RepairActions:       []string{"Measure cam/crank correlation with scope", "Replace chain, guides, and tensioner"},
			DiscriminatingTests: []string{"CKP/CMP correlation measurement", "Chain elongation inspection"},
			CostEstimate:        "$900-$2200",
		},
		{
			ID:                  "oil_pressure_low",
			System:              SystemVVT,
			Description:         "Low engine oil pressure — worn pump or bearings, starves VVT system",
			RepairActions:       []string{"Verify with mechanical gauge", "Check oil level and grade", "Inspect pump and pickup screen"},
			DiscriminatingTests: []string{"Mechanical oil pressure gauge test hot at idle"},
			CostEstimate:        "$100-$2500",
		},

		// Emissions / general engine.
		{
			ID:                  "egr_valve_stuck",
			System:              SystemEmissions,
			Description:         "EGR valve stuck open or closed — rough idle or ping, flow codes",
			RepairActions:       []string{"Command EGR with scan tool and observe idle", "Clean or replace valve and passages"},
			DiscriminatingTests: []string{"Commanded EGR response test"},
			CostEstimate:        "$150-$500",
		},
		{
			ID:                  "catalytic_converter_clogged",
			System:              SystemEmissions,
			Description:         "Catalytic converter restricted — power loss at high RPM, efficiency codes",
			RepairActions:       []string{"Backpressure test", "Replace converter", "Fix upstream cause of failure"},
			DiscriminatingTests: []string{"Exhaust backpressure test", "Vacuum reading at snap throttle"},
			CostEstimate:        "$800-$2000",
		},
		{
			ID:                  "pcv_valve_stuck",
			System:              SystemEmissions,
			Description:         "PCV valve stuck — vacuum leak symptoms or oil consumption",
			RepairActions:       []string{"Shake test valve", "Replace valve and inspect hose"},
			DiscriminatingTests: []string{"Idle change with PCV line blocked"},
			CostEstimate:        "$20-$100",
		},
		{
			ID:                  "throttle_body_dirty",
			System:              SystemGeneral,
			Description:         "Throttle body carbon buildup — unstable idle, stalling on decel",
			RepairActions:       []string{"Clean throttle body", "Relearn idle position"},
			DiscriminatingTests: []string{"Visual inspection of throttle plate"},
			CostEstimate:        "$50-$200",
		},
		{
			ID:                  "idle_air_control_failure",
			System:              SystemGeneral,
			Description:         "Idle air control valve failed — stall at stops, surging idle",
			RepairActions:       []string{"Command IAC with scan tool", "Clean or replace valve"},
			DiscriminatingTests: []string{"IAC counts vs expected at idle"},
			CostEstimate:        "$100-$350",
		},

		// High voltage (EV).
		{
			ID:                  FailureHVIsolation,
			System:              SystemHighVoltage,
			Description:         "High-voltage isolation fault — HV pack leakage path to chassis",
			RepairActions:       []string{"DO NOT operate vehicle — HV safety risk", "Isolate fault with megohmmeter per section", "Repair damaged HV harness or component", "Retest isolation resistance before returning to service"},
			DiscriminatingTests: []string{"Isolation resistance measurement per HV section", "HV connector and harness inspection"},
			CostEstimate:        "$500-$5000",
		},
		{
			ID:                  "hv_battery_cell_imbalance",
			System:              SystemHighVoltage,
			Description:         "HV pack cell group imbalance — range loss, charge taper faults",
			RepairActions:       []string{"Review brick voltage spread during charge", "Balance or replace affected module"},
			DiscriminatingTests: []string{"Brick voltage delta at high and low state of charge"},
			CostEstimate:        "$1500-$8000",
		},
		{
			ID:                  "dcdc_converter_failure",
			System:              SystemHighVoltage,
			Description:         "DC-DC converter failing — 12V system sag on an EV",
			RepairActions:       []string{"Monitor 12V rail under load", "Replace DC-DC converter"},
			DiscriminatingTests: []string{"12V rail voltage under load with HV active"},
			CostEstimate:        "$800-$2000",
		},

		// No-fault hypothesis.
		{
			ID:          FailureNormal,
			System:      SystemGeneral,
			Description: "No actionable fault — readings within normal operating range",
			RepairActions: []string{
				"No repair indicated",
				"Re-test if symptoms persist or recur",
			},
			CostEstimate: "$0",
		},
	}
}
