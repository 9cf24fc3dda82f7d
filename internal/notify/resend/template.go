package resend

import (
	"bytes"
	"html/template"
	"sort"

	"github.com/expotrack/expotrack/internal/model"
	"github.com/expotrack/expotrack/internal/services/leaderboard"
)

type summaryRow struct {
	StationName string
	TimeSpent   string
}

type summaryData struct {
	Name      string
	VisitorID string
	EntryTime string
	Rows      []summaryRow
}

var summaryTemplate = template.Must(template.New("visitSummary").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin: 0; padding: 0; font-family: Helvetica, Arial, sans-serif; background-color: #f4f5f7;">
  <div style="max-width: 650px; margin: 0 auto; padding: 40px 20px;">
    <div style="background: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 12px rgba(0,0,0,0.1);">
      <div style="background: #1e3c72; padding: 40px 30px; text-align: center; color: #ffffff;">
        <h1 style="margin: 0; font-size: 28px;">Thanks for Visiting</h1>
        <p style="margin: 10px 0 0 0; font-size: 16px;">We appreciate your time and interest</p>
      </div>
      <div style="padding: 35px 30px;">
        <p style="font-size: 20px; color: #1e3c72; margin: 0 0 15px 0; font-weight: bold;">Hi {{.Name}},</p>
        <p style="font-size: 15px; color: #333333; margin: 0 0 8px 0;">You entered the event at <strong>{{.EntryTime}}</strong>.</p>
        <p style="font-size: 13px; color: #888888; margin: 0 0 25px 0;">Visitor ID: {{.VisitorID}}</p>
        <h2 style="font-size: 18px; color: #1e3c72; border-bottom: 2px solid #1e3c72; padding-bottom: 8px;">Stations Visited</h2>
{{if .Rows}}        <table style="width: 100%; border-collapse: collapse; margin: 16px 0;">
          <thead>
            <tr style="background: #1e3c72; color: #ffffff;">
              <th style="padding: 12px; text-align: left; font-size: 14px;">Station</th>
              <th style="padding: 12px; text-align: left; font-size: 14px;">Time Spent</th>
            </tr>
          </thead>
          <tbody>
{{range .Rows}}            <tr style="border-bottom: 1px solid #e0e0e0;">
              <td style="padding: 12px; font-size: 14px; color: #1e3c72; font-weight: bold;">{{.StationName}}</td>
              <td style="padding: 12px; font-size: 14px; font-family: monospace; color: #333333;">{{.TimeSpent}}</td>
            </tr>
{{end}}          </tbody>
        </table>
{{else}}        <p style="text-align: center; padding: 25px; color: #999999; font-style: italic; background: #f8f9fa; border-radius: 8px;">
          You browsed the event but didn't visit any specific stations yet.
        </p>
{{end}}        <p style="font-size: 14px; color: #666666; margin-top: 25px;">
          If you have any questions or would like to learn more, please don't hesitate to reach out.
        </p>
      </div>
    </div>
  </div>
</body>
</html>`))

// renderSummary renders the HTML body of the summary email
func renderSummary(data summaryData) (string, error) {
	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// summaryRows builds the per-station rows, longest engagement first
func summaryRows(catalog *model.StationCatalog, completed map[model.StationID]float64) []summaryRow {
	type ranked struct {
		row     summaryRow
		id      model.StationID
		minutes float64
	}

	entries := make([]ranked, 0, len(completed))
	for id, minutes := range completed {
		name := "Station " + string(id)
		if station, ok := catalog.Get(id); ok {
			name = station.Name
		}
		entries = append(entries, ranked{
			row: summaryRow{
				StationName: name,
				TimeSpent:   leaderboard.FormatMinutes(minutes),
			},
			id:      id,
			minutes: minutes,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].minutes != entries[j].minutes {
			return entries[i].minutes > entries[j].minutes
		}
		return entries[i].id < entries[j].id
	})

	rows := make([]summaryRow, len(entries))
	for i, e := range entries {
		rows[i] = e.row
	}
	return rows
}
