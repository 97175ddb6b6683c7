// Copyright (c) 2026 Canonical Ltd
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package requests

import (
	"strings"

	"github.com/opengvm/gvm-go/pkg/gmp/types"
	"github.com/opengvm/gvm-go/pkg/xmlcmd"
)

type CreateTicket struct {
	ResultID         string
	AssignedToUserID string
	Note             string
	Comment          string
}

func (r CreateTicket) Build() (*xmlcmd.Command, error) {
	const function = "create_ticket"

	err := RequireAll(function,
		"result_id", r.ResultID,
		"assigned_to_user_id", r.AssignedToUserID,
		"note", r.Note,
	)
	if err != nil {
		return nil, err
	}

	cmd := xmlcmd.New(function)
	optRef(cmd, "result", r.ResultID)
	optRef(cmd.AddElement("assigned_to"), "user", r.AssignedToUserID)
	cmd.AddElement("open_note", r.Note)
	optText(cmd, "comment", r.Comment)

	return cmd, nil
}

// ModifyTicket changes a ticket. Status and Note must be given together; the
// note is stored as the note of the new status.
type ModifyTicket struct {
	TicketID         string
	Status           types.TicketStatus
	Note             string
	AssignedToUserID string
	Comment          string
}

func (r ModifyTicket) Build() (*xmlcmd.Command, error) {
	const function = "modify_ticket"

	if err := Require(function, "ticket_id", r.TicketID); err != nil {
		return nil, err
	}

	if err := checkEnum(function, "status", r.Status); err != nil {
		return nil, err
	}

	if r.Status != "" {
		if err := Require(function, "note", r.Note); err != nil {
			return nil, err
		}
	}

	if r.Note != "" {
		if err := Require(function, "status", string(r.Status)); err != nil {
			return nil, err
		}
	}

	cmd := xmlcmd.New(function).SetAttribute("ticket_id", r.TicketID)

	if r.AssignedToUserID != "" {
		optRef(cmd.AddElement("assigned_to"), "user", r.AssignedToUserID)
	}

	if r.Status != "" {
		cmd.AddElement("status", string(r.Status))
		cmd.AddElement(strings.ToLower(string(r.Status))+"_note", r.Note)
	}

	optText(cmd, "comment", r.Comment)

	return cmd, nil
}

type GetTickets struct {
	Filter
	Trash bool
}

func (r GetTickets) Build() (*xmlcmd.Command, error) {
	cmd := xmlcmd.New("get_tickets")
	r.apply(cmd)
	flag(cmd, "trash", r.Trash)

	return cmd, nil
}

type GetTicket struct {
	TicketID string
}

func (r GetTicket) Build() (*xmlcmd.Command, error) {
	if err := Require("get_ticket", "ticket_id", r.TicketID); err != nil {
		return nil, err
	}

	return xmlcmd.New("get_tickets").SetAttribute("ticket_id", r.TicketID), nil
}

type DeleteTicket struct {
	TicketID string
	Ultimate bool
}

func (r DeleteTicket) Build() (*xmlcmd.Command, error) {
	return deleteByID("delete_ticket", "ticket_id", r.TicketID, r.Ultimate)
}
