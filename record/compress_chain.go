package record

import (
	"errors"

	"github.com/katalvlaran/brujin/core"
)

// Sentinel errors for PLVR.CompressChain.
var (
	// ErrNotUniqueSuccessor indicates u does not have exactly one distinct
	// successor equal to w, or w does not have exactly one distinct
	// successor — CompressChain requires both (spec §4.4).
	ErrNotUniqueSuccessor = errors.New("record: not a u->w chain edge")

	// ErrMultiplicityMismatch indicates the "multiples-must-match" policy
	// is enabled and mult(u->w) != mult(w->next).
	ErrMultiplicityMismatch = errors.New("record: chain multiplicities differ")
)

// PayloadFuser fuses two payloads along a compressed chain edge. Derived
// record kinds (e.g. a k-mer record whose payload is a sequence fragment)
// override this to control how payloads combine; the zero value falls back
// to ConcatFuser.
type PayloadFuser interface {
	FusePayload(u, w []byte) []byte
}

// ConcatFuser fuses payloads by concatenation in insertion order (u's
// payload first, then w's).
type ConcatFuser struct{}

// FusePayload implements PayloadFuser.
func (ConcatFuser) FusePayload(u, w []byte) []byte {
	out := make([]byte, 0, len(u)+len(w))
	out = append(out, u...)
	out = append(out, w...)
	return out
}

// CompressChainOptions configures a single PLVR.CompressChain call.
type CompressChainOptions struct {
	// MultiplesMustMatch, when true (the default policy), rejects a merge
	// whose u->w and w->next multiplicities differ. When false, the
	// result's multiplicity is the minimum of the two.
	MultiplesMustMatch bool
	// Fuser combines payloads; nil falls back to ConcatFuser.
	Fuser PayloadFuser
}

// CompressChain collapses the edge u->w into a single record u' whose
// edgesTo equal w's edgesTo (i.e. u'->next), discarding w. The caller is
// responsible for dropping w after a successful call.
//
// Succeeds only when:
//   - u's unique successor is w (every entry of u.EdgesTo is w.ID);
//   - w has a unique successor (every entry of w.EdgesTo is the same
//     vertex, "next");
//   - under MultiplesMustMatch, mult(u->w) == mult(w->next).
//
// Neither u nor w may be a branch record; callers (the compress package)
// are responsible for rejecting branch records before calling this.
func CompressChain(u, w *PLVR, opts CompressChainOptions) (*PLVR, error) {
	if len(u.EdgesTo) == 0 || distinctCount(u.EdgesTo) != 1 || u.EdgesTo[0] != w.ID {
		return nil, ErrNotUniqueSuccessor
	}
	if len(w.EdgesTo) == 0 || distinctCount(w.EdgesTo) != 1 {
		return nil, ErrNotUniqueSuccessor
	}

	multUW := len(u.EdgesTo)
	multWNext := len(w.EdgesTo)

	var resultMult int
	if opts.MultiplesMustMatch {
		if multUW != multWNext {
			return nil, ErrMultiplicityMismatch
		}
		resultMult = multUW
	} else {
		resultMult = min(multUW, multWNext)
	}

	next := w.EdgesTo[0]
	out := New(u.ID, u.allowMultiples || w.allowMultiples)
	out.EdgesTo = make([]core.VertexID, resultMult)
	for i := range out.EdgesTo {
		out.EdgesTo[i] = next
	}
	out.EdgesFrom = append([]core.VertexID(nil), u.EdgesFrom...)

	fuser := opts.Fuser
	if fuser == nil {
		fuser = ConcatFuser{}
	}
	out.Payload = fuser.FusePayload(u.Payload, w.Payload)
	out.refreshFlags()

	return out, nil
}
