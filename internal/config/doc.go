// Package config loads decoder configuration from YAML.
//
// Config file structure:
//
//	version: "1"
//	currency: USD
//	points:
//	  default_cash_per_point: 0.01
//	  programs:
//	    chase-ultimate-rewards: 0.015
//	decode:
//	  strict_itinerary: false
//	batch:
//	  workers: 4
//	log:
//	  level: info
//	store:
//	  mongo:
//	    uri: mongodb://localhost:27017
//	    database: travel
//	    collection: trips
//	  redis:
//	    addr: localhost:6379
//	    pattern: "trip:*"
//
// Every section is optional; defaults are applied after parsing.
package config
