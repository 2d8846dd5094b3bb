package report

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/phildaponte/senior-strength/internal/domain"
)

// digestView is the precomputed template model. All derived values are
// calculated here so the template stays presentation-only.
type digestView struct {
	UserName  string
	WeekRange string

	TotalWorkouts int
	TotalMinutes  int
	ActiveDays    int
	CurrentStreak int

	Days []dayCell

	HasMood     bool
	PositivePct int
	NeutralPct  int
	NegativePct int
	Positive    int
	Neutral     int
	Negative    int

	Journal []excerptView
}

type dayCell struct {
	Name   string // "Mon"
	Num    int
	Active bool
}

type excerptView struct {
	Date         string
	WorkoutTitle string
	Emoji        string
	Text         string
}

func buildView(d *domain.WeeklyDigest) digestView {
	v := digestView{
		UserName:      d.UserName,
		WeekRange:     fmt.Sprintf("%s – %s", d.WeekStart.Time().Format("Jan 2"), d.WeekEnd.Time().Format("Jan 2, 2006")),
		TotalWorkouts: d.Stats.TotalWorkouts,
		TotalMinutes:  d.Stats.TotalMinutes,
		ActiveDays:    d.Stats.ActiveDays,
		CurrentStreak: d.Stats.CurrentStreak,
	}

	active := make(map[domain.Date]bool, len(d.Stats.WorkoutDays))
	for _, day := range d.Stats.WorkoutDays {
		active[day] = true
	}
	for day := d.WeekStart; !day.After(d.WeekEnd); day = day.AddDays(1) {
		v.Days = append(v.Days, dayCell{
			Name:   day.Time().Format("Mon"),
			Num:    day.Day,
			Active: active[day],
		})
	}

	if total := d.Stats.Sentiment.Total(); total > 0 {
		v.HasMood = true
		v.Positive = d.Stats.Sentiment.Positive
		v.Neutral = d.Stats.Sentiment.Neutral
		v.Negative = d.Stats.Sentiment.Negative
		v.PositivePct = d.Stats.Sentiment.Positive * 100 / total
		v.NeutralPct = d.Stats.Sentiment.Neutral * 100 / total
		v.NegativePct = 100 - v.PositivePct - v.NeutralPct
	}

	for _, e := range d.Journal {
		title := e.WorkoutTitle
		if title == "" {
			title = "Workout"
		}
		v.Journal = append(v.Journal, excerptView{
			Date:         e.Date.Time().Format("Monday, Jan 2"),
			WorkoutTitle: title,
			Emoji:        e.Sentiment.Emoji(),
			Text:         e.Text,
		})
	}
	return v
}

var htmlTmpl = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="margin:0;padding:0;background-color:#f4f4f7;font-family:Arial,Helvetica,sans-serif;">
<div style="max-width:600px;margin:0 auto;padding:20px;">

<div style="background-color:#2563eb;border-radius:12px 12px 0 0;padding:28px 24px;text-align:center;">
<h1 style="margin:0;color:#ffffff;font-size:24px;">Weekly Fitness Report</h1>
<p style="margin:8px 0 0;color:#dbeafe;font-size:15px;">{{.UserName}} &middot; {{.WeekRange}}</p>
</div>

<div style="background-color:#ffffff;padding:24px;">
<table width="100%" cellpadding="0" cellspacing="0"><tr>
<td width="50%" style="padding:6px;"><div style="background-color:#eff6ff;border-radius:10px;padding:16px;text-align:center;">
<div style="font-size:28px;font-weight:bold;color:#2563eb;">{{.TotalWorkouts}}</div>
<div style="font-size:13px;color:#64748b;">Workouts</div></div></td>
<td width="50%" style="padding:6px;"><div style="background-color:#eff6ff;border-radius:10px;padding:16px;text-align:center;">
<div style="font-size:28px;font-weight:bold;color:#2563eb;">{{.TotalMinutes}}</div>
<div style="font-size:13px;color:#64748b;">Minutes</div></div></td>
</tr><tr>
<td width="50%" style="padding:6px;"><div style="background-color:#eff6ff;border-radius:10px;padding:16px;text-align:center;">
<div style="font-size:28px;font-weight:bold;color:#2563eb;">{{.ActiveDays}}</div>
<div style="font-size:13px;color:#64748b;">Active Days</div></div></td>
<td width="50%" style="padding:6px;"><div style="background-color:#fff7ed;border-radius:10px;padding:16px;text-align:center;">
<div style="font-size:28px;font-weight:bold;color:#ea580c;">{{.CurrentStreak}} 🔥</div>
<div style="font-size:13px;color:#64748b;">Day Streak</div></div></td>
</tr></table>

<h2 style="font-size:16px;color:#1e293b;margin:24px 0 12px;">This Week</h2>
<table width="100%" cellpadding="0" cellspacing="0"><tr>
{{range .Days}}<td style="padding:2px;text-align:center;">
<div style="font-size:11px;color:#94a3b8;">{{.Name}}</div>
{{if .Active}}<div style="background-color:#22c55e;color:#ffffff;border-radius:50%;width:32px;height:32px;line-height:32px;margin:4px auto 0;font-size:13px;font-weight:bold;">{{.Num}}</div>{{else}}<div style="background-color:#f1f5f9;color:#94a3b8;border-radius:50%;width:32px;height:32px;line-height:32px;margin:4px auto 0;font-size:13px;">{{.Num}}</div>{{end}}
</td>{{end}}
</tr></table>

<h2 style="font-size:16px;color:#1e293b;margin:24px 0 12px;">Mood This Week</h2>
{{if .HasMood}}
<table width="100%" cellpadding="0" cellspacing="0" style="border-radius:6px;overflow:hidden;"><tr>
{{if .Positive}}<td width="{{.PositivePct}}%" style="background-color:#22c55e;height:14px;"></td>{{end}}
{{if .Neutral}}<td width="{{.NeutralPct}}%" style="background-color:#facc15;height:14px;"></td>{{end}}
{{if .Negative}}<td width="{{.NegativePct}}%" style="background-color:#ef4444;height:14px;"></td>{{end}}
</tr></table>
<p style="font-size:13px;color:#64748b;margin:8px 0 0;">😊 {{.Positive}} positive &middot; 😐 {{.Neutral}} neutral &middot; 😔 {{.Negative}} negative</p>
{{else}}
<p style="font-size:13px;color:#94a3b8;margin:0;">No mood data recorded this week.</p>
{{end}}

<h2 style="font-size:16px;color:#1e293b;margin:24px 0 12px;">Journal Highlights</h2>
{{if .Journal}}
{{range .Journal}}<div style="background-color:#f8fafc;border-left:4px solid #2563eb;border-radius:0 8px 8px 0;padding:12px 16px;margin-bottom:10px;">
<div style="font-size:12px;color:#64748b;">{{.Date}} &middot; {{.WorkoutTitle}} {{.Emoji}}</div>
<p style="font-size:14px;color:#334155;margin:6px 0 0;font-style:italic;">&ldquo;{{.Text}}&rdquo;</p>
</div>{{end}}
{{else}}
<p style="font-size:13px;color:#94a3b8;margin:0;">No journal entries this week.</p>
{{end}}
</div>

<div style="background-color:#f8fafc;border-radius:0 0 12px 12px;padding:16px 24px;text-align:center;">
<p style="font-size:12px;color:#94a3b8;margin:0;">You are receiving this report as a trusted contact of {{.UserName}}.</p>
</div>

</div>
</body>
</html>
`))

// RenderHTML renders the digest email body. Escaping is left to
// html/template so journal text can never break out of the markup.
func RenderHTML(d *domain.WeeklyDigest) (string, error) {
	var sb strings.Builder
	if err := htmlTmpl.Execute(&sb, buildView(d)); err != nil {
		return "", fmt.Errorf("execute digest template: %w", err)
	}
	return sb.String(), nil
}

// RenderText renders the plain-text fallback. It carries the same facts
// as the HTML body for clients that strip markup.
func RenderText(d *domain.WeeklyDigest) string {
	v := buildView(d)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Weekly Fitness Report\n%s * %s\n\n", v.UserName, v.WeekRange)
	fmt.Fprintf(&sb, "Workouts: %d\n", v.TotalWorkouts)
	fmt.Fprintf(&sb, "Minutes: %d\n", v.TotalMinutes)
	fmt.Fprintf(&sb, "Active days: %d\n", v.ActiveDays)
	fmt.Fprintf(&sb, "Current streak: %d days\n\n", v.CurrentStreak)

	sb.WriteString("This week: ")
	for i, day := range v.Days {
		if i > 0 {
			sb.WriteString(" ")
		}
		if day.Active {
			fmt.Fprintf(&sb, "[%s %d]", day.Name, day.Num)
		} else {
			fmt.Fprintf(&sb, "%s %d", day.Name, day.Num)
		}
	}
	sb.WriteString("\n\n")

	sb.WriteString("Mood this week: ")
	if v.HasMood {
		fmt.Fprintf(&sb, "%d positive, %d neutral, %d negative\n\n", v.Positive, v.Neutral, v.Negative)
	} else {
		sb.WriteString("no mood data recorded this week.\n\n")
	}

	sb.WriteString("Journal highlights:\n")
	if len(v.Journal) == 0 {
		sb.WriteString("No journal entries this week.\n")
	} else {
		for _, e := range v.Journal {
			fmt.Fprintf(&sb, "- %s (%s): \"%s\"\n", e.Date, e.WorkoutTitle, e.Text)
		}
	}

	fmt.Fprintf(&sb, "\nYou are receiving this report as a trusted contact of %s.\n", v.UserName)
	return sb.String()
}
