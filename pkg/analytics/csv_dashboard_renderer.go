package analytics

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

type DashboardRenderer interface {
	RenderDashboard(dashboard Dashboard) (string, error)
}

type CsvDashboardRendererImpl struct {
}

func NewCsvDashboardRenderer() *CsvDashboardRendererImpl {
	return &CsvDashboardRendererImpl{}
}

func (r *CsvDashboardRendererImpl) RenderDashboard(dashboard Dashboard) (string, error) {
	data := make([][]string, 0, 16)

	data = append(data, []string{"Event type", "Count", "Percentage"})
	for _, c := range dashboard.Categories {
		data = append(data, []string{c.Name, strconv.Itoa(c.Count), percentageToString(c.Percentage)})
	}
	data = append(data, []string{})

	data = append(data, []string{"Month", "Events", "Participants"})
	for _, m := range dashboard.Monthly {
		data = append(data, []string{m.Month, strconv.Itoa(m.EventCount), strconv.Itoa(m.ParticipantSum)})
	}
	data = append(data, []string{})

	data = append(data, []string{"Price range", "Count", "Percentage"})
	for _, p := range dashboard.Prices {
		data = append(data, []string{p.Tier.Label(), strconv.Itoa(p.Count), percentageToString(p.Percentage)})
	}
	data = append(data, []string{})

	data = append(data, []string{"Location", "Count"})
	for _, l := range dashboard.Locations {
		data = append(data, []string{l.Location, strconv.Itoa(l.Count)})
	}
	data = append(data, []string{})

	summary := dashboard.Summary
	data = append(data,
		[]string{"Summary", "Value"},
		[]string{"Total events", strconv.Itoa(summary.TotalEvents)},
		[]string{"Total participants", strconv.Itoa(summary.TotalParticipants)},
		[]string{"Average price", summary.AveragePrice.StringFixed(2)},
		[]string{"Upcoming events", strconv.Itoa(summary.UpcomingCount)},
		[]string{"Free events", strconv.Itoa(summary.FreeCount)},
		[]string{"Paid events", strconv.Itoa(summary.PaidCount)},
	)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}

func percentageToString(p int) string {
	return strconv.Itoa(p) + "%"
}
