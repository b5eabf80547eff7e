/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package gm

import (
	"io"
	"time"

	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/sm9"
	"github.com/gmsuite/gmsuite/sm9/bn256"
	"github.com/pkg/errors"
)

// KeyExchange is one side of an SM9 key exchange. Ephemeral points travel
// in their uncompressed encoding.
type KeyExchange struct {
	ke      *sm9.KeyExchange
	rand    io.Reader
	hid     byte
	metrics *Metrics
}

func decodePoint(raw []byte) (*bn256.G1, error) {
	p := &bn256.G1{}
	if err := p.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(err, "Invalid ephemeral point")
	}
	return p, nil
}

// Init starts the exchange as the initiator and returns RA.
func (x *KeyExchange) Init() (ra []byte, err error) {
	defer func(start time.Time) { x.metrics.observe("keyexchange_init", bccsp.SM9, start, err) }(time.Now())

	p, err := x.ke.InitKeyExchange(x.rand, x.hid)
	if err != nil {
		return nil, err
	}
	return p.Marshal(), nil
}

// Respond answers RA as the responder and returns RB, plus SB when
// confirmation is enabled.
func (x *KeyExchange) Respond(ra []byte) (rb, sb []byte, err error) {
	defer func(start time.Time) { x.metrics.observe("keyexchange_respond", bccsp.SM9, start, err) }(time.Now())

	p, err := decodePoint(ra)
	if err != nil {
		return nil, nil, err
	}
	q, sb, err := x.ke.RespondKeyExchange(x.rand, x.hid, p)
	if err != nil {
		return nil, nil, err
	}
	return q.Marshal(), sb, nil
}

// ConfirmResponder checks the responder's answer on the initiator side and
// returns the session key, plus SA when confirmation is enabled.
func (x *KeyExchange) ConfirmResponder(rb, sb []byte) (key, sa []byte, err error) {
	defer func(start time.Time) { x.metrics.observe("keyexchange_confirm", bccsp.SM9, start, err) }(time.Now())

	p, err := decodePoint(rb)
	if err != nil {
		return nil, nil, err
	}
	return x.ke.ConfirmResponder(p, sb)
}

// ConfirmInitiator checks SA on the responder side and returns the session
// key.
func (x *KeyExchange) ConfirmInitiator(sa []byte) (key []byte, err error) {
	defer func(start time.Time) { x.metrics.observe("keyexchange_confirm", bccsp.SM9, start, err) }(time.Now())

	return x.ke.ConfirmInitiator(sa)
}
