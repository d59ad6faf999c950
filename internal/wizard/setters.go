package wizard

import (
	"context"
	"strings"
	"sync/atomic"

	"recharge-transfers/internal/models"
	"recharge-transfers/pkg/maps"
)

// Field setters. Every pricing-relevant mutation recomputes the breakdown
// synchronously under the lock, so the quote never races the form.

func (w *Wizard) SetPickupLocation(loc *models.Location) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.PickupLocation = loc
	w.recalculate()
}

func (w *Wizard) SetDropoffLocation(loc *models.Location) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.DropoffLocation = loc
	w.recalculate()
}

func (w *Wizard) SetPickupDate(date string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.PickupDate = date
	w.recalculate()
}

func (w *Wizard) SetPickupTime(clock string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.PickupTime = clock
	w.recalculate()
}

// SetReturnTrip toggles the return leg. Turning it off clears the dependent
// fields so stale values cannot fail validation later.
func (w *Wizard) SetReturnTrip(enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.ReturnTrip = enabled
	if !enabled {
		w.form.ReturnDate = ""
		w.form.ReturnTime = ""
	}
}

func (w *Wizard) SetReturnDate(date string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.ReturnDate = date
}

func (w *Wizard) SetReturnTime(clock string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.ReturnTime = clock
}

func (w *Wizard) SetPassengerCount(count int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.PassengerCount = count
}

func (w *Wizard) SetLuggageCount(count int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.LuggageCount = count
}

func (w *Wizard) SetVehicleType(vehicleType models.VehicleType) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.VehicleType = vehicleType
	w.recalculate()
}

func (w *Wizard) SetSpecialRequirements(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.SpecialRequirements = text
}

func (w *Wizard) SetFlightNumber(flightNumber string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.FlightNumber = strings.TrimSpace(flightNumber)
}

func (w *Wizard) SetContactName(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.ContactName = name
}

func (w *Wizard) SetContactEmail(email string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.ContactEmail = strings.TrimSpace(email)
}

func (w *Wizard) SetContactPhone(phone string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.ContactPhone = strings.TrimSpace(phone)
}

func (w *Wizard) SetContactWhatsapp(whatsapp string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.ContactWhatsapp = strings.TrimSpace(whatsapp)
}

// ResolvePickupAddress geocodes free-text input and, if the result is still
// current, applies it as the pickup location. Each call invalidates any
// in-flight resolution for the same field, so a slow early response can never
// overwrite a later one.
func (w *Wizard) ResolvePickupAddress(ctx context.Context, query string) error {
	seq := atomic.AddUint64(&w.pickupSeq, 1)

	loc, err := w.resolveAddress(ctx, query)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if atomic.LoadUint64(&w.pickupSeq) != seq {
		return nil // superseded by a newer request
	}
	w.form.PickupLocation = loc
	w.recalculate()
	return nil
}

// ResolveDropoffAddress is the drop-off counterpart of ResolvePickupAddress,
// with its own independent sequence counter.
func (w *Wizard) ResolveDropoffAddress(ctx context.Context, query string) error {
	seq := atomic.AddUint64(&w.dropoffSeq, 1)

	loc, err := w.resolveAddress(ctx, query)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if atomic.LoadUint64(&w.dropoffSeq) != seq {
		return nil
	}
	w.form.DropoffLocation = loc
	w.recalculate()
	return nil
}

func (w *Wizard) resolveAddress(ctx context.Context, query string) (*models.Location, error) {
	query = strings.TrimSpace(query)
	if query == "" || w.places == nil {
		// Without a provider the typed text still works as a plain address;
		// pricing falls back to the estimated distance.
		return &models.Location{Type: "Point", Address: query}, nil
	}

	resp, err := w.places.SearchPlaces(ctx, &maps.PlaceSearchRequest{
		Query:   query,
		Country: w.country,
		Limit:   1,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return &models.Location{Type: "Point", Address: query}, nil
	}

	top := resp.Results[0]
	loc := models.NewLocation(top.Address, top.Location.Latitude, top.Location.Longitude)
	loc.Name = top.Name
	loc.PlaceID = top.PlaceID
	return loc, nil
}
