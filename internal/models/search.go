package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// FloorFilter narrows a room search to a floor band.
type FloorFilter string

const (
	FloorAny       FloorFilter = "ANY"
	FloorOne       FloorFilter = "ONE"
	FloorTwo       FloorFilter = "TWO"
	FloorThreePlus FloorFilter = "THREE_PLUS"
)

// ParseFloorFilter maps user input to a floor band. Unknown or empty input
// falls back to FloorAny rather than failing.
func ParseFloorFilter(s string) FloorFilter {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1", "1층", "ONE":
		return FloorOne
	case "2", "2층", "TWO":
		return FloorTwo
	case "3", "3층", "3+", "3PLUS", "THREE_PLUS":
		return FloorThreePlus
	default:
		return FloorAny
	}
}

// RoomFilter is a conjunction of optional search criteria. Zero-value fields
// contribute no clause, so the empty filter matches every room.
type RoomFilter struct {
	Location    string
	MonthlyMin  *int
	MonthlyMax  *int
	DepositMin  *int
	DepositMax  *int
	Floor       FloorFilter
	ParkingOnly bool
}

// Matches reports whether the room satisfies every active clause.
func (f RoomFilter) Matches(r *Room) bool {
	var clauses []func(*Room) bool

	if loc := strings.TrimSpace(f.Location); loc != "" {
		needle := strings.ToLower(loc)
		clauses = append(clauses, func(r *Room) bool {
			return strings.Contains(strings.ToLower(r.Address), needle)
		})
	}
	if f.MonthlyMin != nil {
		min := *f.MonthlyMin
		clauses = append(clauses, func(r *Room) bool { return r.MonthlyRent >= min })
	}
	if f.MonthlyMax != nil {
		max := *f.MonthlyMax
		clauses = append(clauses, func(r *Room) bool { return r.MonthlyRent <= max })
	}
	if f.DepositMin != nil {
		min := *f.DepositMin
		clauses = append(clauses, func(r *Room) bool { return r.Deposit >= min })
	}
	if f.DepositMax != nil {
		max := *f.DepositMax
		clauses = append(clauses, func(r *Room) bool { return r.Deposit <= max })
	}
	switch f.Floor {
	case FloorOne:
		clauses = append(clauses, func(r *Room) bool { return r.Floor != nil && *r.Floor == 1 })
	case FloorTwo:
		clauses = append(clauses, func(r *Room) bool { return r.Floor != nil && *r.Floor == 2 })
	case FloorThreePlus:
		clauses = append(clauses, func(r *Room) bool { return r.Floor != nil && *r.Floor >= 3 })
	}
	if f.ParkingOnly {
		clauses = append(clauses, func(r *Room) bool { return r.ParkingAvailable != nil && *r.ParkingAvailable })
	}

	for _, match := range clauses {
		if !match(r) {
			return false
		}
	}
	return true
}

// CacheKey derives a stable Redis key for this filter's result set.
func (f RoomFilter) CacheKey() string {
	intOrDash := func(p *int) string {
		if p == nil {
			return "-"
		}
		return fmt.Sprint(*p)
	}
	canonical := strings.Join([]string{
		strings.ToLower(strings.TrimSpace(f.Location)),
		intOrDash(f.MonthlyMin),
		intOrDash(f.MonthlyMax),
		intOrDash(f.DepositMin),
		intOrDash(f.DepositMax),
		string(f.Floor),
		fmt.Sprint(f.ParkingOnly),
	}, "|")
	sum := sha256.Sum256([]byte(canonical))
	return "rooms:search:" + hex.EncodeToString(sum[:])
}
