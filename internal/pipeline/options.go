package pipeline

import (
	"evalmarks/internal/config"
	"evalmarks/internal/dataprocessing"
)

// Options are the cleaning and marking rules for one run
type Options struct {
	// Sheet selects the worksheet; empty means the first sheet
	Sheet         string
	Exclusions    []dataprocessing.Exclusion
	Corrections   []dataprocessing.Correction
	Doors         dataprocessing.DoorRange
	Participation dataprocessing.ParticipationRules
	// MaxPoints scales fractional evaluation scores
	MaxPoints float64
}

// DefaultOptions returns the BUEC 420 rules
func DefaultOptions() Options {
	return Options{
		Exclusions:  dataprocessing.DefaultExclusions,
		Corrections: dataprocessing.DefaultCorrections,
		Doors:       dataprocessing.DoorRange{Min: config.DefaultDoorMin, Max: config.DefaultDoorMax},
		Participation: dataprocessing.ParticipationRules{
			PointsPerResponse: config.DefaultPointsPerResponse,
			BonusSection:      config.DefaultBonusSection,
			SectionBonus:      config.DefaultSectionBonus,
		},
		MaxPoints: config.DefaultMaxPoints,
	}
}

// OptionsFromConfig applies the configured marking rules on top of the defaults
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	opts.Sheet = cfg.Paths.Sheet
	opts.Doors = dataprocessing.DoorRange{Min: cfg.Marks.DoorMin, Max: cfg.Marks.DoorMax}
	opts.Participation = dataprocessing.ParticipationRules{
		PointsPerResponse: cfg.Marks.PointsPerResponse,
		BonusSection:      cfg.Marks.BonusSection,
		SectionBonus:      cfg.Marks.SectionBonus,
	}
	opts.MaxPoints = cfg.Marks.MaxPoints
	return opts
}
