package organizer

import (
	"github.com/jamesainslie/tidy/pkg/tidy/category"
	"github.com/jamesainslie/tidy/pkg/tidy/logging"
	"github.com/jamesainslie/tidy/pkg/tidy/types"
)

// Params is the immutable configuration bundle for one run. It is
// validated once at the orchestration boundary; the engine never
// reinterprets it mid-run.
type Params struct {
	// Source is the directory whose files are organized.
	Source string

	// Dest is the root the classifiers build destination paths under.
	Dest string

	// Mode selects the classification policy.
	Mode types.Mode

	// Action selects move or copy.
	Action types.Action

	// OnConflict decides what happens when a destination exists.
	OnConflict types.ConflictPolicy

	// Recursive enumerates subdirectories of Source.
	Recursive bool

	// DryRun reports intended transfers without touching the filesystem.
	DryRun bool

	// SkipUnknown leaves files with uncategorized extensions in place
	// (type mode only) instead of sending them to Others.
	SkipUnknown bool

	// Categories is the category map consulted by the type mode.
	// Nil falls back to the built-in defaults.
	Categories category.Map

	// UndoLogPath locates the undo log. Empty disables undo recording.
	UndoLogPath string

	// OnProgress, when set, is invoked after each processed file.
	OnProgress types.RunProgress

	// Logger receives run diagnostics. Nil discards them.
	Logger *logging.Logger
}
