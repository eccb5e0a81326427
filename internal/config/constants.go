package config

import "evalmarks/pkg/contracts"

// Application constants
const (
	// Application Info
	AppName    = "evalmarks"
	AppVersion = contracts.Version

	// Environment
	EnvPrefix         = "EVALMARKS"
	EnvConfigFileName = "EVALMARKS_CONFIG_FILE"

	// File Paths (relative to the working directory)
	DefaultInputFile = "Case Presentation Evaluation data - BUEC 420.xlsx"
	DefaultOutputDir = "results"
	DefaultLogsDir   = "logs"
	DefaultLogFile   = "logs/evalmarks.log"

	// Output formats
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"

	// Report names (extension is added from the output format)
	ReportDisqualified  = "Students_Who_Lied_About_Participation"
	ReportParticipation = "Participation_Marks"
	ReportPresentation  = "Presentation_Marks"

	// Course rules
	DefaultBonusSection      = "Section A04, 2-3 pm on Monday and Wednesday"
	DefaultPointsPerResponse = 0.5
	DefaultSectionBonus      = 0.5
	DefaultMaxPoints         = 2.0
	DefaultDoorMin           = 1
	DefaultDoorMax           = 60

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)
