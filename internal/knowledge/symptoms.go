package knowledge

// symptomVocabulary maps customer-language phrases to evidence tokens.
// Matching is case-insensitive with bidirectional substring containment
// (phrase-in-text or text-in-phrase), exact match tried first. Phrases are
// stored lowercase.
func symptomVocabulary() map[string]string {
	return map[string]string{
		// Cooling.
		"overheating":          "engine_overheating",
		"temperature gauge high": "engine_overheating",
		"running hot":          "engine_overheating",
		"steam from hood":      "engine_overheating",
		"engine running cold":  "engine_running_cold",
		"runs cold":            "engine_running_cold",
		"temperature gauge low": "engine_running_cold",
		"no heat from heater":  "no_heat_from_heater",
		"no heat":              "no_heat_from_heater",
		"heater blows cold":    "no_heat_from_heater",
		"losing coolant":       "coolant_loss_visible",
		"coolant leak":         "coolant_loss_visible",
		"coolant puddle":       "coolant_loss_visible",
		"white smoke":          "white_smoke_exhaust",
		"sweet smell":          "sweet_smell",

		// Driveability.
		"rough idle":             "rough_idle",
		"idle rough":             "rough_idle",
		"shaking at idle":        "rough_idle",
		"hesitation":             "hesitation_on_acceleration",
		"hesitates":              "hesitation_on_acceleration",
		"stumbles on acceleration": "hesitation_on_acceleration",
		"misfire":                "engine_misfire_felt",
		"engine miss":            "engine_misfire_felt",
		"stalling":               "stalling",
		"stalls":                 "stalling",
		"dies at idle":           "stalling",
		"hard to start":          "hard_start",
		"hard start":             "hard_start",
		"long crank":             "long_crank",
		"cranks a long time":     "long_crank",
		"won't crank":            "no_start_no_crank",
		"no crank":               "no_start_no_crank",
		"cranks but won't start": "no_start_cranks",
		"cranks no start":        "no_start_cranks",
		"clicking when starting": "clicking_on_start",
		"single click":           "clicking_on_start",
		"slow crank":             "slow_crank",
		"cranks slowly":          "slow_crank",
		"bad fuel economy":       "poor_fuel_economy",
		"poor gas mileage":       "poor_fuel_economy",
		"down on power":          "lack_of_power",
		"no power":               "lack_of_power",
		"sluggish":               "lack_of_power",

		// Electrical.
		"battery light":     "battery_warning_light",
		"charging light":    "battery_warning_light",
		"dim lights":        "dim_lights",
		"lights dim":        "dim_lights",
		"flickering lights": "flickering_lights",
		"squealing":         "squealing_noise_belt",
		"belt squeal":       "squealing_noise_belt",

		// Noises.
		"whining noise":      "whining_noise_acceleration",
		"whine":              "whining_noise_acceleration",
		"grinding when braking": "grinding_noise_braking",
		"grinding brakes":    "grinding_noise_braking",
		"rattle on startup":  "rattle_on_startup",
		"rattle at startup":  "rattle_on_startup",
		"startup rattle":     "rattle_on_startup",

		// Brakes.
		"brake pedal pulsates":  "brake_pedal_pulsation",
		"pulsation when braking": "brake_pedal_pulsation",
		"steering wheel shakes when braking": "brake_pedal_pulsation",
		"soft brake pedal":      "brake_pedal_soft",
		"spongy pedal":          "brake_pedal_soft",
		"pedal sinks":           "brake_pedal_sinks",
		"pulls when braking":    "vehicle_pulls_braking",
		"abs light":             "abs_light_on",

		// Transmission.
		"delayed shifting":     "delayed_shifting",
		"delayed engagement":   "delayed_shifting",
		"harsh shifting":       "harsh_shifting",
		"hard shifts":          "harsh_shifting",
		"transmission slipping": "transmission_slipping_felt",
		"slipping":             "transmission_slipping_felt",
		"rpm flare":            "transmission_slipping_felt",
		"shudder":              "shudder_at_lockup",

		// Turbo.
		"low boost":          "reduced_boost_felt",
		"no boost":           "reduced_boost_felt",
		"hissing under load": "hissing_under_load",
		"hissing sound":      "hissing_under_load",
		"blue smoke":         "blue_smoke_exhaust",

		// Warnings.
		"oil pressure light": "oil_pressure_warning",
		"oil light":          "oil_pressure_warning",

		// High voltage.
		"isolation fault":   "isolation_fault_warning",
		"isolation warning": "isolation_fault_warning",
		"reduced range":     "reduced_range",
		"range dropped":     "reduced_range",
	}
}
