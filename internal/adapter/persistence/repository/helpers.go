package repository

import (
	"fmt"
	"time"
)

// Single-table key layout.
//
//	ORDER#<number>    ORDER                        order
//	ORDER#<number>    HISTORY#<seq>                status history entry
//	ORDER#<number>    ESTIMATE#<v>                 cost estimate version
//	ORDER#<number>    ESTHIST#<v>#<at>#<id>        estimate history entry
//	ORDER#<number>    RESERVATION#<id>             part usage reservation
//	ORDER#<number>    FEEPAY#<v>#<id>              fee payment
//	PART#<id>         PART                         part
//	PART#<id>         MOVEMENT#<seq>               stock movement
//	SESSION#<id>      SESSION                      inventory session
const (
	orderPrefix   = "ORDER#"
	partPrefix    = "PART#"
	sessionPrefix = "SESSION#"

	orderSK       = "ORDER"
	partSK        = "PART"
	sessionSK     = "SESSION"
	historySK     = "HISTORY#"
	estimateSK    = "ESTIMATE#"
	estHistorySK  = "ESTHIST#"
	reservationSK = "RESERVATION#"
	feePaymentSK  = "FEEPAY#"
	movementSK    = "MOVEMENT#"
)

func orderPK(number string) string { return orderPrefix + number }
func partPK(id string) string       { return partPrefix + id }
func sessionPK(id string) string    { return sessionPrefix + id }

// versionKey zero-pads versions so sort keys order numerically.
func versionKey(v int) string { return fmt.Sprintf("%04d", v) }

func estimateKeySK(v int) string        { return estimateSK + versionKey(v) }
func estHistoryPrefix(v int) string     { return estHistorySK + versionKey(v) + "#" }
func feePaymentPrefix(v int) string     { return feePaymentSK + versionKey(v) + "#" }
func movementKeySK(seq int64) string    { return fmt.Sprintf("%s%012d", movementSK, seq) }
func historyKeySK(seq int64) string     { return fmt.Sprintf("%s%012d", historySK, seq) }
func reservationKeySK(id string) string { return reservationSK + id }

func timeKey(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
