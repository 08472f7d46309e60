package calsync

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav/caldav"
)

const productID = "-//MeetingPlanner//CalDAV//EN"

type CalDAVConfig struct {
	URL          string
	Username     string
	Password     string
	CalendarPath string
	Timeout      time.Duration
}

func (c CalDAVConfig) Configured() bool {
	return c.URL != "" && c.CalendarPath != ""
}

// CalDAV кладёт события в календарь PUT-ом <calendar>/<uid>.ics и удаляет DELETE-ом.
type CalDAV struct {
	client       *caldav.Client
	calendarPath string
	now          func() time.Time
}

func NewCalDAV(cfg CalDAVConfig) (*CalDAV, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("caldav: url and calendar path are required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}
	if cfg.Username != "" {
		httpClient.Transport = &basicAuthTransport{
			username: cfg.Username,
			password: cfg.Password,
		}
	}

	client, err := caldav.NewClient(httpClient, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to CalDAV: %w", err)
	}

	path := cfg.CalendarPath
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return &CalDAV{
		client:       client,
		calendarPath: path,
		now:          time.Now,
	}, nil
}

type basicAuthTransport struct {
	username string
	password string
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.SetBasicAuth(t.username, t.password)
	return http.DefaultTransport.RoundTrip(req)
}

func (c *CalDAV) objectPath(uid string) string {
	return c.calendarPath + uid + ".ics"
}

func (c *CalDAV) Upsert(ctx context.Context, ev Event) error {
	if ev.UID == "" {
		return fmt.Errorf("caldav: event without uid")
	}
	if _, err := c.client.PutCalendarObject(ctx, c.objectPath(ev.UID), eventToICS(ev, c.now())); err != nil {
		return fmt.Errorf("put event %s: %w", ev.UID, err)
	}
	return nil
}

func (c *CalDAV) Delete(ctx context.Context, uid string) error {
	if uid == "" {
		return nil
	}
	if err := c.client.RemoveAll(ctx, c.objectPath(uid)); err != nil {
		return fmt.Errorf("delete event %s: %w", uid, err)
	}
	return nil
}

// eventToICS собирает VCALENDAR с одним VEVENT; время в UTC.
func eventToICS(ev Event, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	vevent := ical.NewEvent()
	vevent.Props.SetText(ical.PropUID, ev.UID)
	vevent.Props.SetText(ical.PropSummary, ev.Summary)
	if ev.Description != "" {
		vevent.Props.SetText(ical.PropDescription, ev.Description)
	}
	if ev.Location != "" {
		vevent.Props.SetText(ical.PropLocation, ev.Location)
	}
	if u, err := url.Parse(ev.URL); err == nil && ev.URL != "" {
		vevent.Props.SetURI(ical.PropURL, u)
	}
	vevent.Props.SetDateTime(ical.PropDateTimeStart, ev.Start.UTC())
	vevent.Props.SetDateTime(ical.PropDateTimeEnd, ev.End.UTC())
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())

	cal.Children = append(cal.Children, vevent.Component)
	return cal
}

// SerializeCalendar — текстовое представление календаря.
func SerializeCalendar(cal *ical.Calendar) (string, error) {
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", err
	}
	return buf.String(), nil
}
