package ui

import (
	"github.com/caioricciuti/plugin-updater/internal/ui/components"
	"github.com/caioricciuti/plugin-updater/internal/updater"
)

// StatusSource is the read side of a version check. *updater.Checker
// implements it.
type StatusSource interface {
	Result() updater.Result
	LocalVersion() (updater.Version, bool)
	LatestVersion() (updater.Version, bool)
	Release() *updater.Release
	LastError() error
}

// Headline is the one-line description of a check result.
func Headline(r updater.Result) string {
	switch r {
	case updater.ResultLoading:
		return "Checking for updates..."
	case updater.ResultError:
		return "Version check failed"
	case updater.ResultUpToDate:
		return "Up to date"
	case updater.ResultPatchUpdate:
		return "Patch update available"
	case updater.ResultMinorUpdate:
		return "Minor update available"
	case updater.ResultMajorUpdate:
		return "Major update available"
	}
	return r.String()
}

// ResultLevel maps a check result to a display level.
func ResultLevel(r updater.Result) components.Level {
	switch r {
	case updater.ResultError:
		return components.LevelError
	case updater.ResultUpToDate:
		return components.LevelSuccess
	case updater.ResultMajorUpdate:
		return components.LevelWarning
	case updater.ResultPatchUpdate, updater.ResultMinorUpdate:
		return components.LevelInfo
	}
	return components.LevelMuted
}

// SummaryCard builds the card describing the current state of src.
func SummaryCard(src StatusSource, styles *components.BaseStyles, width int) *components.Card {
	result := src.Result()
	card := &components.Card{
		Title:  "Plugin Updater",
		Status: Headline(result),
		Level:  ResultLevel(result),
		Width:  width,
		Styles: styles,
	}

	if v, ok := src.LocalVersion(); ok {
		card.Rows = append(card.Rows, components.Row{Label: "Local", Value: v.String()})
	}
	if v, ok := src.LatestVersion(); ok {
		card.Rows = append(card.Rows, components.Row{Label: "Latest", Value: v.String()})
	}
	if rel := src.Release(); rel != nil && result.UpdateAvailable() {
		if rel.Name != "" {
			card.Rows = append(card.Rows, components.Row{Label: "Release", Value: rel.Name})
		}
		if rel.HTMLURL != "" {
			card.Rows = append(card.Rows, components.Row{Label: "Link", Value: rel.HTMLURL})
		}
	}
	if err := src.LastError(); err != nil {
		card.Notes = append(card.Notes, err.Error())
	}
	return card
}
