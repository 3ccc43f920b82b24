package api

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rqa-security/guardhouse/datastore"
	"github.com/rqa-security/guardhouse/payroll"
)

const (
	upcomingWithin = 7 * 24 * time.Hour
	upcomingLimit  = 5
	recentLimit    = 5
	payDatesShown  = 2
)

type dashboardStats struct {
	datastore.DashboardCounts
	AvailablePersonnel int `json:"availablePersonnel"`
}

type activity struct {
	ID      int64          `json:"id"`
	Message string         `json:"message"`
	Time    datastore.Date `json:"time"`
}

type dashboardData struct {
	Stats               dashboardStats         `json:"stats"`
	UpcomingAssignments []datastore.Assignment `json:"upcomingAssignments"`
	RecentActivities    []activity             `json:"recentActivities"`
	NextPayDates        []datastore.Date       `json:"nextPayDates"`
}

// dashboard gathers the headline numbers, the assignments starting this week, the
// latest assignments and the next pay dates.
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	var (
		counts   datastore.DashboardCounts
		upcoming []datastore.Assignment
		recent   []datastore.Assignment
	)
	dash := s.store.Dashboard()
	today := s.today()

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		counts, err = dash.Counts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		upcoming, err = dash.UpcomingAssignments(ctx, today, upcomingWithin, upcomingLimit)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = dash.RecentAssignments(ctx, recentLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		s.fail(w, r, err)
		return
	}

	activities := make([]activity, 0, len(recent))
	for _, a := range recent {
		activities = append(activities, activity{
			ID:      a.AssignmentID,
			Message: fmt.Sprintf("%s assigned to %s (%s)", a.PersonnelName, a.ClientName, a.Status),
			Time:    a.StartDate,
		})
	}

	s.ok(w, dashboardData{
		Stats: dashboardStats{
			DashboardCounts:    counts,
			AvailablePersonnel: max(counts.Personnel-counts.ActiveAssignments, 0),
		},
		UpcomingAssignments: upcoming,
		RecentActivities:    activities,
		NextPayDates:        payroll.NextPayDates(s.now(), payDatesShown),
	})
}
