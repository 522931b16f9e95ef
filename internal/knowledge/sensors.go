package knowledge

// Canonical sensor names. Readings are normalized (lowercase, spaces to
// underscores) before lookup; aliases below fold common scan-tool names onto
// the canonical set.
const (
	SensorCoolantTemp         = "coolant_temp"
	SensorOilPressure         = "oil_pressure"
	SensorBatteryVoltage      = "battery_voltage"
	SensorChargingVoltage     = "charging_voltage"
	SensorACRipple            = "ac_ripple"
	SensorMAF                 = "maf"
	SensorO2Voltage           = "o2_voltage"
	SensorFuelPressure        = "fuel_pressure"
	SensorSTFT                = "short_term_fuel_trim"
	SensorLTFT                = "long_term_fuel_trim"
	SensorBoostPressure       = "boost_pressure"
	SensorTransTemp           = "trans_temp"
	SensorIdleRPMVariance     = "idle_rpm_variance"
	SensorIsolationResistance = "isolation_resistance"
	SensorHVCellDelta         = "hv_cell_delta"
)

// SensorAliases maps alternate reading names onto canonical sensor names.
var SensorAliases = map[string]string{
	"coolant_temperature":      SensorCoolantTemp,
	"ect":                      SensorCoolantTemp,
	"engine_coolant_temp":      SensorCoolantTemp,
	"engine_oil_pressure":      SensorOilPressure,
	"maf_rate":                 SensorMAF,
	"mass_air_flow":            SensorMAF,
	"o2_b1s1":                  SensorO2Voltage,
	"o2_sensor_voltage":        SensorO2Voltage,
	"fuel_rail_pressure":       SensorFuelPressure,
	"stft":                     SensorSTFT,
	"ltft":                     SensorLTFT,
	"boost":                    SensorBoostPressure,
	"transmission_fluid_temp":  SensorTransTemp,
	"insulation_resistance":    SensorIsolationResistance,
	"hv_isolation_resistance":  SensorIsolationResistance,
	"brick_voltage_delta":      SensorHVCellDelta,
	"alternator_voltage":       SensorChargingVoltage,
	"system_voltage":           SensorBatteryVoltage,
}

// Fuel-trim combination thresholds: |STFT| + |LTFT| at or above these values
// yields the corresponding combined evidence token.
const (
	FuelTrimHighThreshold     = 25.0
	FuelTrimModerateThreshold = 18.0

	TokenHighTotalFuelTrim     = "high_total_fuel_trim"
	TokenModerateTotalFuelTrim = "moderate_total_fuel_trim"
)

// sensorRules maps canonical sensor names to threshold rules. High is
// checked before Low; the first crossing produces the evidence token.
// Units follow common scan-tool conventions: temperatures in Celsius,
// pressures in kPa (oil in psi, isolation in megaohms), MAF in g/s.
func sensorRules() map[string]SensorRule {
	return map[string]SensorRule{
		SensorCoolantTemp: {
			High: &Threshold{Value: 110, Token: "coolant_temp_high"},
			Low:  &Threshold{Value: 70, Token: "coolant_temp_low"},
		},
		SensorOilPressure: {
			Low: &Threshold{Value: 10, Token: "low_oil_pressure"},
		},
		SensorBatteryVoltage: {
			High: &Threshold{Value: 15.2, Token: "battery_voltage_high"},
			Low:  &Threshold{Value: 12.2, Token: "battery_voltage_low"},
		},
		SensorChargingVoltage: {
			High: &Threshold{Value: 15.2, Token: "charging_voltage_high"},
			Low:  &Threshold{Value: 13.2, Token: "charging_voltage_low"},
		},
		SensorACRipple: {
			High: &Threshold{Value: 0.5, Token: "ac_ripple_high"},
		},
		SensorMAF: {
			High: &Threshold{Value: 12, Token: "maf_high"},
			Low:  &Threshold{Value: 2.0, Token: "maf_low"},
		},
		SensorO2Voltage: {
			High: &Threshold{Value: 0.8, Token: "o2_voltage_high_stuck"},
			Low:  &Threshold{Value: 0.2, Token: "o2_voltage_low_stuck"},
		},
		SensorFuelPressure: {
			High: &Threshold{Value: 450, Token: "fuel_pressure_high"},
			Low:  &Threshold{Value: 250, Token: "fuel_pressure_low"},
		},
		SensorBoostPressure: {
			High: &Threshold{Value: 180, Token: "boost_pressure_high"},
			Low:  &Threshold{Value: 90, Token: "boost_pressure_low"},
		},
		SensorTransTemp: {
			High: &Threshold{Value: 110, Token: "trans_temp_high"},
		},
		SensorIdleRPMVariance: {
			High: &Threshold{Value: 75, Token: "idle_rpm_unstable"},
		},
		SensorIsolationResistance: {
			Low: &Threshold{Value: 0.5, Token: "insulation_resistance_low"},
		},
		SensorHVCellDelta: {
			High: &Threshold{Value: 0.1, Token: "hv_cell_delta_high"},
		},
	}
}

// baselineFeatures is a healthy warm-idle reading for each classifier
// feature. Actual readings override these defaults when present.
func baselineFeatures() map[string]float64 {
	return map[string]float64{
		SensorCoolantTemp:         92,
		SensorOilPressure:         35,
		SensorBatteryVoltage:      14.2,
		SensorChargingVoltage:     14.2,
		SensorACRipple:            0.05,
		SensorMAF:                 4.5,
		SensorO2Voltage:           0.45,
		SensorFuelPressure:        380,
		SensorSTFT:                1.0,
		SensorLTFT:                2.0,
		SensorBoostPressure:       100,
		SensorTransTemp:           85,
		SensorIdleRPMVariance:     20,
		SensorIsolationResistance: 10,
		SensorHVCellDelta:         0.01,
	}
}
