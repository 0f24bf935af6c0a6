package gdialog

import (
	"github.com/sqweek/dialog"
)

// Fatal shows a start-up error the user would otherwise miss in the log
func Fatal(err error) {
	if err == nil {
		return
	}
	dialog.Message("%s", err.Error()).Title("dragchess").Error()
}
