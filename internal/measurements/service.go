package measurements

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftlog/internal/account"
	"github.com/2beens/liftlog/internal/apperr"
	"github.com/2beens/liftlog/internal/telemetry/tracing"
	"github.com/2beens/liftlog/internal/units"
)

type store interface {
	Add(ctx context.Context, m *Measurement) error
	List(ctx context.Context, userID int, t Type) ([]Measurement, error)
	Delete(ctx context.Context, userID, id int) error
}

type settingsReader interface {
	Settings(ctx context.Context, userID int) (*account.Settings, error)
}

type LogRequest struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
	// Unit overrides the user's preferred unit for this entry.
	Unit string `json:"unit,omitempty"`
}

type Service struct {
	store    store
	settings settingsReader
	// ability to inject the clock (for unit testing)
	Now func() time.Time
}

func NewService(store store, settings settingsReader) *Service {
	return &Service{
		store:    store,
		settings: settings,
		Now:      time.Now,
	}
}

// ApplyUnit returns prefs with the unit override applied for type t.
func ApplyUnit(t Type, unit string, prefs units.Prefs) (units.Prefs, error) {
	if unit == "" {
		return prefs, nil
	}
	switch t.Kind() {
	case KindWeight:
		u, err := units.ParseWeightUnit(unit)
		if err != nil {
			return prefs, apperr.Validation("%s", err)
		}
		prefs.Weight = u
	case KindLength:
		u, err := units.ParseLengthUnit(unit)
		if err != nil {
			return prefs, apperr.Validation("%s", err)
		}
		prefs.Length = u
	default:
		if unit != "%" {
			return prefs, apperr.Validation("%s is measured in %%", t)
		}
	}
	return prefs, nil
}

func (s *Service) Log(ctx context.Context, userID int, req LogRequest) (_ *Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.measurements.log")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	t, err := ParseType(req.Type)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("type", string(t)))

	settings, err := s.settings.Settings(ctx, userID)
	if err != nil {
		return nil, err
	}
	prefs, err := ApplyUnit(t, req.Unit, settings.Prefs)
	if err != nil {
		return nil, err
	}

	value, err := NewCanonical(t, req.Value, prefs)
	if err != nil {
		return nil, err
	}

	m := &Measurement{
		UserID:     userID,
		Type:       t,
		Value:      value,
		MeasuredAt: s.Now().UTC(),
	}
	if err := s.store.Add(ctx, m); err != nil {
		return nil, err
	}

	return toDisplay(*m, settings.Prefs), nil
}

// List returns the user's measurements in their display units.
func (s *Service) List(ctx context.Context, userID int, typeParam string) (_ []Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.measurements.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var t Type
	if typeParam != "" {
		if t, err = ParseType(typeParam); err != nil {
			return nil, err
		}
	}

	settings, err := s.settings.Settings(ctx, userID)
	if err != nil {
		return nil, err
	}

	list, err := s.store.List(ctx, userID, t)
	if err != nil {
		return nil, err
	}

	out := make([]Measurement, 0, len(list))
	for _, m := range list {
		out = append(out, *toDisplay(m, settings.Prefs))
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int) error {
	return s.store.Delete(ctx, userID, id)
}

func toDisplay(m Measurement, prefs units.Prefs) *Measurement {
	m.Value = units.Round2(ToDisplay(m.Type, m.Value, prefs))
	m.Unit = UnitLabel(m.Type, prefs)
	return &m
}
