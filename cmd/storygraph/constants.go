package main

// validFormats lists the supported export output formats.
var validFormats = []string{"json", "csv", "markdown"}

// validConflictStrategies lists the supported import conflict strategies.
var validConflictStrategies = []string{"skip", "overwrite"}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
