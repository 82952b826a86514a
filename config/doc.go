// Package config loads casecurve settings from YAML with environment
// overrides.
//
// # Basic Usage
//
//	cfg, err := config.Load("casecurve.yaml") // defaults when missing
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// A minimal file:
//
//	analysis:
//	  region: Italy
//	  fit_start: 20
//	  fit_end: 40
//	logging:
//	  level: debug
//
// CASECURVE_REGION, CASECURVE_CASES_FILE and CASECURVE_LOG_LEVEL override
// the file.
package config
