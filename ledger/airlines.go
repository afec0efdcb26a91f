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

package ledger

import (
	"github.com/mariogutval/flightsurety/database/models"
	"gorm.io/gorm"
)

// RegisterAirline admits or queues a new airline. While the admitted
// membership is small enough that voting is not meaningful, new airlines
// are admitted immediately; past that size admission requires approval
// votes from funded members
func (ls *LedgerState) RegisterAirline(
	caller string,
	address string,
	name string,
) error {
	ls.Lock()
	defer ls.Unlock()
	if err := ls.requireOperational(); err != nil {
		return err
	}
	if err := ls.requireRole(caller, RoleAuthorized, nil); err != nil {
		return err
	}
	var registered *models.Airline
	err := ls.db.Transaction(func(txn *gorm.DB) error {
		airline, err := ls.db.GetOrCreateAirline(address, txn)
		if err != nil {
			return err
		}
		if airline.State > models.AirlineStateApplied {
			return ErrAlreadyRegistered
		}
		admitted, err := ls.db.CountAdmittedAirlines(txn)
		if err != nil {
			return err
		}
		airline.Name = name
		if admitted <= bootstrapAirlineLimit {
			airline.State = models.AirlineStateRegistered
		}
		if err := ls.db.SaveAirline(airline, txn); err != nil {
			return err
		}
		registered = airline
		return nil
	})
	if err != nil {
		ls.metrics.operation("register_airline", err)
		return err
	}
	ls.metrics.operation("register_airline", nil)
	ls.config.Logger.Info(
		"airline registered",
		"address", address,
		"state", models.AirlineStateString(registered.State),
		"component", "ledger",
	)
	ls.publish(AirlineRegisteredEventType, AirlineEvent{
		Address: address,
		Name:    name,
		State:   models.AirlineStateString(registered.State),
	})
	return nil
}

// Vote records an admission approval for a candidate airline by a funded
// member. The approval sequence is not deduplicated. The promotion
// threshold is evaluated after every vote
func (ls *LedgerState) Vote(
	caller string,
	voter string,
	candidate string,
) error {
	ls.Lock()
	defer ls.Unlock()
	if err := ls.requireOperational(); err != nil {
		return err
	}
	if err := ls.requireRole(caller, RoleAuthorized, nil); err != nil {
		return err
	}
	var approvals int64
	var promoted bool
	err := ls.db.Transaction(func(txn *gorm.DB) error {
		voterAirline, err := ls.db.GetAirline(voter, txn)
		if err != nil {
			return err
		}
		if voterAirline == nil ||
			voterAirline.State != models.AirlineStatePaid {
			return ErrNotEligibleVoter
		}
		candidateAirline, err := ls.db.GetOrCreateAirline(candidate, txn)
		if err != nil {
			return err
		}
		if err := ls.db.AddApproval(candidateAirline.ID, voter, txn); err != nil {
			return err
		}
		approvals, err = ls.db.CountApprovals(candidateAirline.ID, txn)
		if err != nil {
			return err
		}
		admitted, err := ls.db.CountAdmittedAirlines(txn)
		if err != nil {
			return err
		}
		if candidateAirline.State == models.AirlineStateApplied &&
			voteThresholdMet(approvals, admitted) {
			candidateAirline.State = models.AirlineStateRegistered
			if err := ls.db.SaveAirline(candidateAirline, txn); err != nil {
				return err
			}
			promoted = true
		}
		return nil
	})
	if err != nil {
		ls.metrics.operation("vote", err)
		return err
	}
	ls.metrics.operation("vote", nil)
	if promoted {
		ls.metrics.promotions.Inc()
		ls.config.Logger.Info(
			"airline admitted by vote",
			"candidate", candidate,
			"approvals", approvals,
			"component", "ledger",
		)
	}
	ls.publish(AirlineVotedEventType, VoteEvent{
		Voter:     voter,
		Candidate: candidate,
		Approvals: approvals,
		Promoted:  promoted,
	})
	return nil
}

// voteThresholdMet applies the parity-specific admission rule: an
// even-sized membership can be carried by an exact half of its size, an
// odd-sized membership requires a strict majority. The parity branch is
// deliberately on the admitted membership count, not on the number of
// approvals collected, so a candidate facing five members is admitted on
// their third approval. Integer division truncation is part of the
// contract
func voteThresholdMet(approvals int64, admitted int64) bool {
	if admitted%2 == 0 {
		return approvals >= admitted/2
	}
	return approvals > admitted/2
}

// Fund accumulates a contribution toward an airline's membership funding.
// When the running total first reaches the funding threshold the airline
// becomes a full (Paid) member with voting rights. Paid is terminal
func (ls *LedgerState) Fund(
	caller string,
	address string,
	amount uint64,
) error {
	ls.Lock()
	defer ls.Unlock()
	if err := ls.requireOperational(); err != nil {
		return err
	}
	var total uint64
	var promoted bool
	err := ls.db.Transaction(func(txn *gorm.DB) error {
		airline, err := ls.db.GetOrCreateAirline(address, txn)
		if err != nil {
			return err
		}
		airline.Funding += amount
		total = airline.Funding
		if airline.State == models.AirlineStateRegistered &&
			airline.Funding >= ls.config.FundingThreshold {
			airline.State = models.AirlineStatePaid
			promoted = true
		}
		return ls.db.SaveAirline(airline, txn)
	})
	if err != nil {
		ls.metrics.operation("fund", err)
		return err
	}
	ls.metrics.operation("fund", nil)
	if promoted {
		ls.metrics.promotions.Inc()
		ls.config.Logger.Info(
			"airline fully funded",
			"address", address,
			"total", total,
			"component", "ledger",
		)
	}
	ls.publish(AirlineFundedEventType, FundEvent{
		Address:  address,
		Caller:   caller,
		Amount:   amount,
		Total:    total,
		Promoted: promoted,
	})
	return nil
}
