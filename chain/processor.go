// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/state"
)

// View is the transactional state an action executes against.
type View interface {
	state.Mutable

	OpIndex() int
	Rollback(ctx context.Context, restorePoint int)
}

// Processor decodes inbound messages and runs them to completion.
type Processor struct {
	parser Parser
	rules  Rules
}

func NewProcessor(parser Parser, rules Rules) *Processor {
	return &Processor{parser: parser, rules: rules}
}

func (p *Processor) Rules() Rules {
	return p.rules
}

// Parse decodes [msg] once into the action it carries. [im] is the
// committed state of the recipient.
func (p *Processor) Parse(ctx context.Context, im state.Immutable, msg *Message) (Action, error) {
	if len(msg.Body) > consts.MaxMessageSize {
		return nil, fmt.Errorf("%w: %w (%d bytes)", ErrMalformedBody, ErrBodyTooLarge, len(msg.Body))
	}
	initialized, err := p.parser.Initialized(ctx, im)
	if err != nil {
		return nil, err
	}
	if !initialized {
		if len(msg.Init) == 0 {
			return nil, ErrUninitialized
		}
		action, err := p.parser.DeployAction(msg.Init)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
		}
		return action, nil
	}
	if len(msg.Body) == 0 {
		return p.parser.NoCodeAction(), nil
	}
	if len(msg.Body) < consts.Uint32Len {
		return nil, fmt.Errorf("%w: body of %d bytes has no op-code", ErrMalformedBody, len(msg.Body))
	}

	r := codec.NewReader(msg.Body, consts.MaxMessageSize)
	op := r.UnpackInt(false)
	unmarshal, ok := p.parser.ActionRegistry().LookupIndex(op)
	if !ok {
		return nil, fmt.Errorf("%w: 0x%x", ErrUnknownOp, op)
	}
	action, err := unmarshal(r)
	if err != nil {
		return nil, fmt.Errorf("%w: op 0x%x: %w", ErrMalformedBody, op, err)
	}
	if err := r.Done(); err != nil {
		return nil, fmt.Errorf("%w: op 0x%x: %w", ErrMalformedBody, op, err)
	}
	return action, nil
}

// Execute runs [action] for [actor] against [view]. If the action fails,
// every write it made is rolled back before the result is returned.
func (p *Processor) Execute(ctx context.Context, view View, actor codec.Address, action Action) *Result {
	start := view.OpIndex()
	output, transfers, err := action.Execute(ctx, p.rules, view, actor)
	if err != nil {
		view.Rollback(ctx, start)
		result := Failed(err)
		result.TypeID = action.GetTypeID()
		result.Parsed = true
		return result
	}
	return &Result{
		Success:   true,
		ExitCode:  ExitCodeSuccess,
		TypeID:    action.GetTypeID(),
		Parsed:    true,
		Output:    output,
		Transfers: transfers,
	}
}
