package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/flightbooking/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type flightsHandlers struct {
	validator *Validator
}

// list handles GET /flights.
func (h *flightsHandlers) list(w http.ResponseWriter, r *http.Request, c FlightsContext) error {
	flights, err := c.FlightsService.RetrieveAllFlights(r.Context(), c.User.ID)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, flights)
}

// create handles POST /flights.
func (h *flightsHandlers) create() Handler[FlightsContext] {
	return WithBody(h.validator, func(w http.ResponseWriter, r *http.Request, c FlightsContext, p models.FlightPayload) error {
		flight, err := c.FlightsService.CreateFlight(r.Context(), c.User.ID, p)
		if err != nil {
			return err
		}
		return writeJSON(w, http.StatusCreated, flight)
	})
}

// get handles GET /flights/{flightId}.
func (h *flightsHandlers) get(w http.ResponseWriter, r *http.Request, c FlightsContext) error {
	flight, err := c.FlightsService.RetrieveFlight(r.Context(), chi.URLParam(r, FlightIDParam), c.User.ID)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, flight)
}

// update handles PATCH /flights/{flightId}. The body replaces every field.
func (h *flightsHandlers) update() Handler[FlightsContext] {
	return WithBody(h.validator, func(w http.ResponseWriter, r *http.Request, c FlightsContext, p models.FlightPayload) error {
		flight, err := c.FlightsService.UpdateFlight(r.Context(), chi.URLParam(r, FlightIDParam), c.User.ID, p)
		if err != nil {
			return err
		}
		return writeJSON(w, http.StatusOK, flight)
	})
}

// remove handles DELETE /flights/{flightId}.
func (h *flightsHandlers) remove(w http.ResponseWriter, r *http.Request, c FlightsContext) error {
	if err := c.FlightsService.DeleteFlight(r.Context(), chi.URLParam(r, FlightIDParam), c.User.ID); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
