package crosscheck

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/utc"

	"github.com/rinkstats/crosscheck/pkg/constants"
	"github.com/rinkstats/crosscheck/pkg/errors"
	"github.com/rinkstats/crosscheck/pkg/reconcile"
)

// SaveReport renders the report and writes it beneath dir as
// <gameID>-<timestamp>.txt, creating the directory if needed. Returns
// the written path.
func (c *crosscheck) SaveReport(report *reconcile.ReconciliationReport, dir string) (string, error) {
	if report == nil {
		return "", errors.NewValidationError("report", nil, "report cannot be nil")
	}

	dir, err := expandPath(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", dir, err)
	}

	name := fmt.Sprintf("%s-%s.txt", report.GameID, utc.Now().Format(constants.TimeFormatFilename))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(report.Render()), constants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", path, err)
	}
	return path, nil
}

// expandPath resolves a leading ~ against the user's home directory.
func expandPath(path string) (string, error) {
	if path == "" {
		path = constants.DefaultReportsPath
	}
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapIO("resolve", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
