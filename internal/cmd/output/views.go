package output

import (
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/dupap/pkg/constants"
	"github.com/agentstation/dupap/pkg/expiry"
	"github.com/agentstation/dupap/pkg/inventory"
	"github.com/agentstation/dupap/pkg/reconcile"
)

// ReportTable renders a run report as a two-column summary.
func ReportTable(r *reconcile.Report) Data {
	rows := r.Summary()
	if r.DryRun {
		rows = append(rows, []string{"dry run", "yes"})
	}
	return Data{
		Headers:         []string{"Item", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// DuplicateRow is one device of a duplicated hostname.
type DuplicateRow struct {
	Hostname   string               `json:"hostname" yaml:"hostname"`
	DeviceID   int64                `json:"device_id" yaml:"device_id"`
	Connected  bool                 `json:"connected" yaml:"connected"`
	AdminState inventory.AdminState `json:"device_admin_state" yaml:"device_admin_state"`
	Serial     string               `json:"serial_number,omitempty" yaml:"serial_number,omitempty"`
	MAC        string               `json:"mac_address,omitempty" yaml:"mac_address,omitempty"`
	Action     string               `json:"action" yaml:"action"`
}

// DuplicateRows flattens duplicates into one row per device. candidates
// are the ids the run would unmanage.
func DuplicateRows(dups []inventory.Duplicate, candidates []int64) []DuplicateRow {
	quarantine := make(map[int64]bool, len(candidates))
	for _, id := range candidates {
		quarantine[id] = true
	}

	rows := make([]DuplicateRow, 0)
	for _, dup := range dups {
		for _, d := range dup.Devices {
			action := "keep"
			if quarantine[d.ID] {
				action = "unmanage"
			}
			rows = append(rows, DuplicateRow{
				Hostname:   dup.Hostname,
				DeviceID:   d.ID,
				Connected:  d.Connected,
				AdminState: d.AdminState,
				Serial:     d.SerialNumber,
				MAC:        d.MACAddress,
				Action:     action,
			})
		}
	}
	return rows
}

// DuplicatesTable renders duplicate rows. Wide adds serial and MAC columns.
func DuplicatesTable(rows []DuplicateRow, wide bool) Data {
	data := Data{
		Headers:         []string{"Hostname", "Device ID", "Connected", "Admin State"},
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignCenter, AlignLeft},
	}
	if wide {
		data.Headers = append(data.Headers, "Serial", "MAC")
		data.ColumnAlignment = append(data.ColumnAlignment, AlignLeft, AlignLeft)
	}
	data.Headers = append(data.Headers, "Action")
	data.ColumnAlignment = append(data.ColumnAlignment, AlignLeft)

	for _, r := range rows {
		row := []string{
			r.Hostname,
			strconv.FormatInt(r.DeviceID, 10),
			strconv.FormatBool(r.Connected),
			string(r.AdminState),
		}
		if wide {
			row = append(row, r.Serial, r.MAC)
		}
		data.Rows = append(data.Rows, append(row, r.Action))
	}
	return data
}

// RecordRow is a quarantine record with its remaining grace time.
type RecordRow struct {
	DeviceID  int64     `json:"device_id" yaml:"device_id"`
	AddedAt   time.Time `json:"added_time" yaml:"added_time"`
	ExpireAt  time.Time `json:"expire_at" yaml:"expire_at"`
	Remaining string    `json:"remaining" yaml:"remaining"`
	Expired   bool      `json:"expired" yaml:"expired"`
}

// RecordRows evaluates every record at now.
func RecordRows(records expiry.Records, now time.Time) []RecordRow {
	rows := make([]RecordRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, RecordRow{
			DeviceID:  r.DeviceID,
			AddedAt:   r.AddedAt.UTC(),
			ExpireAt:  r.ExpireAt.UTC(),
			Remaining: FormatRemaining(r.Remaining(now)),
			Expired:   r.Expired(now),
		})
	}
	return rows
}

// RecordsTable renders record rows.
func RecordsTable(rows []RecordRow) Data {
	data := Data{
		Headers:         []string{"Device ID", "Added", "Expires", "Remaining"},
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignRight},
	}
	for _, r := range rows {
		data.Rows = append(data.Rows, []string{
			strconv.FormatInt(r.DeviceID, 10),
			r.AddedAt.Format(constants.TimeFormatHuman),
			r.ExpireAt.Format(constants.TimeFormatHuman),
			r.Remaining,
		})
	}
	return data
}

// FormatRemaining renders a duration as days and hours.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "expired"
	}
	days := int(d / (24 * time.Hour))
	hours := int((d % (24 * time.Hour)) / time.Hour)

	var b strings.Builder
	if days > 0 {
		b.WriteString(strconv.Itoa(days) + "d")
	}
	if hours > 0 || days == 0 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(strconv.Itoa(hours) + "h")
	}
	return b.String()
}
