package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"time"

	"github.com/jrsteele09/clientconnect/crm"
	"github.com/jrsteele09/clientconnect/pages"
)

//go:embed templates/*
var templateFiles embed.FS

const layoutTemplate = "layout.html"

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

var templateFuncs = template.FuncMap{
	"money":  pages.FormatMoney,
	"number": pages.FormatNumber,
	// seconds rounds a duration up to whole seconds for the toast timer.
	"seconds": func(d time.Duration) int {
		return int(math.Ceil(d.Seconds()))
	},
	"statusClass": func(s crm.ProjectStatus) string {
		switch s {
		case crm.ProjectActive:
			return "status-active"
		case crm.ProjectCompleted:
			return "status-completed"
		default:
			return "status-pending"
		}
	},
	"statuses": func() []crm.ProjectStatus {
		return crm.ProjectStatuses
	},
	"date": func(t crm.Time) string {
		return t.Date()
	},
}

// ParseTemplate parses a page template together with the shared layout from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	tmpl, err := template.New(layoutTemplate).Funcs(templateFuncs).ParseFS(TemplateFilesFS(), layoutTemplate, name)
	if err != nil {
		return nil, fmt.Errorf("[ParseTemplate] %s: %w", name, err)
	}
	return tmpl, nil
}
