package utils

import (
	"strconv"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/sirupsen/logrus"
)

const (
	fallbackWorkers = 2
	maxAutoWorkers  = 8
)

// GetOptimalWorkerCount resolves the "workers" setting: a positive number is used as-is,
// "auto" derives a count from the logical CPU cores.
func GetOptimalWorkerCount(configValue string, log logrus.FieldLogger) int {
	if manual, err := strconv.Atoi(configValue); err == nil && manual > 0 {
		log.Debugf("Using configured number of workers: %d", manual)
		return manual
	}

	if configValue != "auto" {
		log.Warnf("Invalid workers value %q, falling back to auto", configValue)
	}

	// Each worker drives its own browser tab, so stay well below the core count.
	cores, err := cpu.Counts(true)
	if err != nil {
		log.Warnf("Could not detect CPU cores, using %d workers: %v", fallbackWorkers, err)
		return fallbackWorkers
	}

	workers := cores / 2
	if workers < 1 {
		workers = 1
	}
	if workers > maxAutoWorkers {
		workers = maxAutoWorkers
	}

	log.Infof("System has %d logical cores, using %d workers", cores, workers)
	return workers
}
