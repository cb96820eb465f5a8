package service

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"lejog-map/internal/config"
	"lejog-map/internal/domain"
	"lejog-map/pkg/errors"
	"lejog-map/pkg/logger"
	"lejog-map/pkg/polyline"
	"lejog-map/pkg/strava"
)

// routeState classifies the outcome of one activity's geometry recovery.
type routeState int

const (
	routeOK routeState = iota
	routeMissing
	routeFailed
)

// routeResult makes each per-activity recovery decision an explicit branch:
// use the route, drop the activity, or drop it because a fetch failed.
type routeResult struct {
	state  routeState
	points []domain.GeoPoint
	err    error
}

// enrichment pairs an activity's detail record with its recovered route.
type enrichment struct {
	detail *strava.DetailedActivity
	route  routeResult
}

// StravaActivitiesService implements ActivitiesService against the Strava API.
type StravaActivitiesService struct {
	client       *strava.Client
	auth         AuthService
	logger       *logger.Logger
	activityType string
	pageSize     int
	maxPages     int
	concurrency  int
}

// NewStravaActivitiesService creates the activity aggregation service.
func NewStravaActivitiesService(client *strava.Client, auth AuthService, cfg *config.Config, logger *logger.Logger) *StravaActivitiesService {
	concurrency := cfg.EnrichConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &StravaActivitiesService{
		client:       client,
		auth:         auth,
		logger:       logger,
		activityType: cfg.ActivityType,
		pageSize:     cfg.StravaPageSize,
		maxPages:     cfg.StravaMaxPages,
		concurrency:  concurrency,
	}
}

// ListMappedActivities fetches, filters, sorts, enriches and normalizes ride
// activities within the date window. Both bounds are calendar days and the end
// day is inclusive. Per-activity failures are recovered locally; only a
// missing credential or a failed listing aborts the whole aggregation.
func (s *StravaActivitiesService) ListMappedActivities(ctx context.Context, start, end time.Time) ([]domain.MappedActivity, error) {
	cred := s.auth.UsableCredential(ctx)
	if cred == nil {
		return nil, errors.NewNoCredentialError()
	}

	after, before := start.Unix(), end.AddDate(0, 0, 1).Unix()
	s.logger.WithFields(map[string]interface{}{
		"after":  after,
		"before": before,
	}).Debug("Fetching activities in date window")

	raw, err := s.listAll(ctx, cred.AccessToken, after, before)
	if err != nil {
		return nil, errors.NewAggregationError("Failed to list activities", err)
	}

	rides := make([]strava.SummaryActivity, 0, len(raw))
	for _, activity := range raw {
		if activity.Type == s.activityType {
			rides = append(rides, activity)
		}
	}

	// Stable keeps provider order for identical start times.
	sort.SliceStable(rides, func(i, j int) bool {
		return rides[i].StartDate.Before(rides[j].StartDate)
	})

	s.logger.WithFields(map[string]interface{}{
		"total": len(raw),
		"rides": len(rides),
	}).Info("Filtered activities to rides")

	enriched := s.enrichAll(ctx, cred.AccessToken, rides)

	mapped := make([]domain.MappedActivity, 0, len(rides))
	dropped := 0
	for i, e := range enriched {
		switch e.route.state {
		case routeOK:
			mapped = append(mapped, normalizeActivity(e.detail, e.route.points))
		case routeMissing:
			dropped++
			s.logger.WithField("activity_id", rides[i].ID).Warn("No route data available for activity")
		case routeFailed:
			dropped++
			s.logger.WithError(e.route.err).WithField("activity_id", rides[i].ID).Error("Failed to enrich activity, skipping")
		}
	}

	if dropped > 0 {
		s.logger.WithFields(map[string]interface{}{
			"mapped":  len(mapped),
			"dropped": dropped,
		}).Info("Some activities had no recoverable route")
	}

	return mapped, nil
}

// GetAthlete returns the authenticated athlete's profile.
func (s *StravaActivitiesService) GetAthlete(ctx context.Context) (*strava.Athlete, error) {
	cred := s.auth.UsableCredential(ctx)
	if cred == nil {
		return nil, errors.NewNoCredentialError()
	}

	athlete, err := s.client.GetAthlete(ctx, cred.AccessToken)
	if err != nil {
		return nil, errors.NewExternalError("Failed to fetch athlete profile", err)
	}
	return athlete, nil
}

// listAll accumulates every page of the listing in request order.
func (s *StravaActivitiesService) listAll(ctx context.Context, accessToken string, after, before int64) ([]strava.SummaryActivity, error) {
	pager := &activityPager{
		client:      s.client,
		accessToken: accessToken,
		after:       after,
		before:      before,
		pageSize:    s.pageSize,
		maxPages:    s.maxPages,
	}

	var all []strava.SummaryActivity
	for {
		batch, more, err := pager.Next(ctx)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if !more {
			if pager.capped {
				s.logger.WithField("max_pages", s.maxPages).Warn("Activity listing hit the page cap, results may be incomplete")
			}
			return all, nil
		}
	}
}

// enrichAll recovers route geometry for each ride under bounded parallelism.
// Results are collected by index so the output preserves the sorted order,
// not completion order.
func (s *StravaActivitiesService) enrichAll(ctx context.Context, accessToken string, rides []strava.SummaryActivity) []enrichment {
	results := make([]enrichment, len(rides))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, ride := range rides {
		g.Go(func() error {
			results[i] = s.enrich(gctx, accessToken, ride.ID)
			return nil
		})
	}
	// Goroutines never return errors; failures are recorded per activity.
	_ = g.Wait()

	return results
}

// enrich fetches one activity's detail and route geometry, preferring the
// high-resolution latlng stream and falling back to the embedded summary
// polyline. Every failure is contained to this one activity.
func (s *StravaActivitiesService) enrich(ctx context.Context, accessToken string, id int64) enrichment {
	detail, err := s.client.GetActivity(ctx, accessToken, id)
	if err != nil {
		return enrichment{route: routeResult{state: routeFailed, err: err}}
	}

	stream, err := s.client.GetLatLngStream(ctx, accessToken, id)
	if err != nil {
		s.logger.WithError(err).WithField("activity_id", id).Warn("Stream fetch failed, falling back to summary polyline")
	}
	if len(stream) > 0 {
		points := make([]domain.GeoPoint, len(stream))
		for i, ll := range stream {
			points[i] = domain.GeoPoint(ll)
		}
		return enrichment{detail: detail, route: routeResult{state: routeOK, points: points}}
	}

	if detail.Map.SummaryPolyline != "" {
		points, err := polyline.Decode(detail.Map.SummaryPolyline)
		if err != nil {
			return enrichment{detail: detail, route: routeResult{state: routeFailed, err: err}}
		}
		if len(points) > 0 {
			return enrichment{detail: detail, route: routeResult{state: routeOK, points: points}}
		}
	}

	return enrichment{detail: detail, route: routeResult{state: routeMissing}}
}

// normalizeActivity converts a Strava detail record plus a non-empty route
// into the externally exposed shape.
func normalizeActivity(detail *strava.DetailedActivity, route []domain.GeoPoint) domain.MappedActivity {
	return domain.MappedActivity{
		ID:            detail.ID,
		Name:          detail.Name,
		Date:          detail.StartDate.Format(time.RFC3339),
		Distance:      detail.Distance / 1000,
		MovingTime:    detail.MovingTime,
		ElevationGain: detail.TotalElevationGain,
		StartPoint:    &route[0],
		EndPoint:      &route[len(route)-1],
		Route:         route,
	}
}

// activityPager walks the paginated listing with an explicit termination
// predicate: a short page means end-of-results, and a defensive page cap
// bounds requests against a misbehaving provider.
type activityPager struct {
	client      *strava.Client
	accessToken string
	after       int64
	before      int64
	pageSize    int
	maxPages    int

	page   int
	done   bool
	capped bool
}

// Next fetches the next page. more is false once the listing is exhausted.
func (p *activityPager) Next(ctx context.Context) (batch []strava.SummaryActivity, more bool, err error) {
	if p.done {
		return nil, false, nil
	}

	p.page++
	batch, err = p.client.ListActivities(ctx, p.accessToken, strava.ListActivitiesParams{
		After:   p.after,
		Before:  p.before,
		Page:    p.page,
		PerPage: p.pageSize,
	})
	if err != nil {
		p.done = true
		return nil, false, err
	}

	if len(batch) < p.pageSize {
		p.done = true
	} else if p.page >= p.maxPages {
		p.done = true
		p.capped = true
	}

	return batch, !p.done, nil
}
