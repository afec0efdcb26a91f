// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mariogutval/flightsurety/ledger"
)

// CallerHeader carries the caller identity on every mutating request.
// Verifying the identity is delegated to the gateway in front of the API
const CallerHeader = "X-Surety-Caller"

// writeJSON writes a JSON response with the given status code.
func writeJSON(
	w http.ResponseWriter,
	status int,
	v any,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson
	json.NewEncoder(w).Encode(v)
}

// writeError maps a ledger error onto an HTTP status and writes the error
// response. Gate rejections map to Service Unavailable so clients can tell
// a paused service apart from a denied request
func writeError(
	w http.ResponseWriter,
	err error,
) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrNotOperational):
		status = http.StatusServiceUnavailable
	case errors.Is(err, ledger.ErrNotAuthorized),
		errors.Is(err, ledger.ErrNotEligibleVoter):
		status = http.StatusForbidden
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrAlreadyRegistered):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrFlightNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, ErrorResponse{
		Error: err.Error(),
	})
}

// readJSON decodes the request body into v. A malformed body is reported
// to the client as a Bad Request
func readJSON(
	w http.ResponseWriter,
	r *http.Request,
	v any,
) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return false
	}
	return true
}

func callerAddress(r *http.Request) string {
	return r.Header.Get(CallerHeader)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(
	w http.ResponseWriter,
	_ *http.Request,
) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"healthy": true,
	})
}

// handleGetOperational handles GET /api/v1/operational.
func (s *Server) handleGetOperational(
	w http.ResponseWriter,
	_ *http.Request,
) {
	writeJSON(w, http.StatusOK, operationalResponse{
		Operational: s.ledger.IsOperational(),
	})
}

// handleSetOperational handles PUT /api/v1/operational.
func (s *Server) handleSetOperational(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req setOperationalRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.ledger.SetOperatingStatus(
		callerAddress(r),
		req.Operational,
	); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, operationalResponse{
		Operational: req.Operational,
	})
}

// handleAuthorizeCaller handles POST /api/v1/callers.
func (s *Server) handleAuthorizeCaller(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req authorizeCallerRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.ledger.AuthorizeCaller(
		callerAddress(r),
		req.Address,
	); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeauthorizeCaller handles DELETE /api/v1/callers/{address}.
func (s *Server) handleDeauthorizeCaller(
	w http.ResponseWriter,
	r *http.Request,
) {
	if err := s.ledger.DeauthorizeCaller(
		callerAddress(r),
		r.PathValue("address"),
	); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRegisterAirline handles POST /api/v1/airlines.
func (s *Server) handleRegisterAirline(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req registerAirlineRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.ledger.RegisterAirline(
		callerAddress(r),
		req.Address,
		req.Name,
	); err != nil {
		writeError(w, err)
		return
	}
	info, err := s.ledger.GetAirline(req.Address)
	if err != nil || info == nil {
		s.logger.Error(
			"failed to read back registered airline",
			"address", req.Address,
			"error", err,
		)
		writeJSON(
			w,
			http.StatusInternalServerError,
			ErrorResponse{Error: "internal error"},
		)
		return
	}
	writeJSON(w, http.StatusCreated, airlineInfoResponse(info))
}

// handlePaidAirlines handles GET /api/v1/airlines and returns the funded
// member roster.
func (s *Server) handlePaidAirlines(
	w http.ResponseWriter,
	_ *http.Request,
) {
	airlines, err := s.ledger.PaidAirlines()
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]airlineResponse, 0, len(airlines))
	for i := range airlines {
		resp = append(resp, *airlineInfoResponse(&airlines[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetAirline handles GET /api/v1/airlines/{address}.
func (s *Server) handleGetAirline(
	w http.ResponseWriter,
	r *http.Request,
) {
	info, err := s.ledger.GetAirline(r.PathValue("address"))
	if err != nil {
		writeError(w, err)
		return
	}
	if info == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: "airline not found",
		})
		return
	}
	writeJSON(w, http.StatusOK, airlineInfoResponse(info))
}

// handleVote handles POST /api/v1/airlines/{address}/votes.
func (s *Server) handleVote(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req voteRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.ledger.Vote(
		callerAddress(r),
		req.Voter,
		r.PathValue("address"),
	); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleFund handles POST /api/v1/airlines/{address}/fund.
func (s *Server) handleFund(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req fundRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.ledger.Fund(
		callerAddress(r),
		r.PathValue("address"),
		req.Amount,
	); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRegisterFlight handles POST /api/v1/flights.
func (s *Server) handleRegisterFlight(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req registerFlightRequest
	if !readJSON(w, r, &req) {
		return
	}
	key, err := s.ledger.RegisterFlight(
		callerAddress(r),
		req.Airline,
		req.Number,
		time.Unix(req.Departure, 0),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, flightResponse{
		Key:       key,
		Airline:   req.Airline,
		Number:    req.Number,
		Departure: req.Departure,
	})
}

// handleGetFlight handles GET /api/v1/flights/{key}.
func (s *Server) handleGetFlight(
	w http.ResponseWriter,
	r *http.Request,
) {
	flight, err := s.ledger.GetFlight(r.PathValue("key"))
	if err != nil {
		writeError(w, err)
		return
	}
	if flight == nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: "flight not found",
		})
		return
	}
	writeJSON(w, http.StatusOK, flightResponse{
		Key:       flight.Key,
		Airline:   flight.Airline,
		Number:    flight.Number,
		Departure: flight.Departure,
		Status:    flight.Status,
	})
}

// handleFlightStatus handles POST /api/v1/flights/{key}/status.
func (s *Server) handleFlightStatus(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req flightStatusRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.ledger.ProcessFlightStatus(
		callerAddress(r),
		r.PathValue("key"),
		req.Status,
	); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCreditInsurees handles POST /api/v1/flights/{key}/credit.
func (s *Server) handleCreditInsurees(
	w http.ResponseWriter,
	r *http.Request,
) {
	if err := s.ledger.CreditInsurees(
		callerAddress(r),
		r.PathValue("key"),
	); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCloseInsurees handles POST /api/v1/flights/{key}/close.
func (s *Server) handleCloseInsurees(
	w http.ResponseWriter,
	r *http.Request,
) {
	if err := s.ledger.CloseInsurees(
		callerAddress(r),
		r.PathValue("key"),
	); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleBuy handles POST /api/v1/policies.
func (s *Server) handleBuy(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req buyPolicyRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.ledger.Buy(
		req.Passenger,
		req.FlightKey,
		req.Value,
	); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, policyResponse{
		Passenger: req.Passenger,
		FlightKey: req.FlightKey,
		Value:     req.Value,
		Status:    policyStatusString(0),
	})
}

// handleGetPolicies handles GET /api/v1/policies/{key} and returns the
// policy sequence for a flight key in purchase order.
func (s *Server) handleGetPolicies(
	w http.ResponseWriter,
	r *http.Request,
) {
	policies, err := s.ledger.GetPolicies(r.PathValue("key"))
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]policyResponse, 0, len(policies))
	for _, policy := range policies {
		resp = append(resp, policyResponse{
			Passenger: policy.Passenger,
			FlightKey: policy.FlightKey,
			Value:     policy.Value,
			Status:    policyStatusString(policy.Status),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// handlePay handles POST /api/v1/payouts/{address} and withdraws the
// beneficiary's pending payout.
func (s *Server) handlePay(
	w http.ResponseWriter,
	r *http.Request,
) {
	beneficiary := r.PathValue("address")
	amount, err := s.ledger.Pay(callerAddress(r), beneficiary)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payoutResponse{
		Beneficiary: beneficiary,
		Amount:      amount,
	})
}

// handleGetPayout handles GET /api/v1/payouts/{address}.
func (s *Server) handleGetPayout(
	w http.ResponseWriter,
	r *http.Request,
) {
	beneficiary := r.PathValue("address")
	amount, err := s.ledger.PendingPayout(beneficiary)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payoutResponse{
		Beneficiary: beneficiary,
		Amount:      amount,
	})
}

func airlineInfoResponse(info *ledger.AirlineInfo) *airlineResponse {
	return &airlineResponse{
		Address:   info.Address,
		Name:      info.Name,
		State:     info.State,
		Funding:   info.Funding,
		Approvals: info.Approvals,
	}
}
