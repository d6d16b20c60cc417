package tracker_test

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/RafiqApp/Rafiq-Backend/internal/geo"
	"github.com/RafiqApp/Rafiq-Backend/internal/geofence"
	"github.com/RafiqApp/Rafiq-Backend/internal/tracker"
)

// haramZone is the reference zone used across these tests: 200 m around
// the Kaaba. The point 0.0025 degrees of latitude north is ~278 m away.
func haramZone() geofence.Geofence {
	return geofence.Geofence{
		ID:           "zone-haram",
		GroupID:      "group-1",
		Name:         "Masjid al-Haram",
		Latitude:     21.4225,
		Longitude:    39.8262,
		RadiusMeters: 200,
		Active:       true,
	}
}

const (
	insideLat  = 21.4225
	insideLon  = 39.8262
	outsideLat = 21.4250
	outsideLon = 39.8262
)

// TestEvaluate_FirstSampleSeedsSilently verifies the first evaluation after
// connect never emits a transition, whether the sample is inside or outside.
func TestEvaluate_FirstSampleSeedsSilently(t *testing.T) {
	zones := []geofence.Geofence{haramZone()}

	tr := tracker.New()
	if got := tr.Evaluate("m-inside", insideLat, insideLon, zones); len(got) != 0 {
		t.Errorf("inside seed: expected no transitions, got %d", len(got))
	}
	if got := tr.StateOf("m-inside", "zone-haram"); got != tracker.StateInside {
		t.Errorf("inside seed: expected INSIDE, got %s", got)
	}

	if got := tr.Evaluate("m-outside", outsideLat, outsideLon, zones); len(got) != 0 {
		t.Errorf("outside seed: expected no transitions, got %d", len(got))
	}
	if got := tr.StateOf("m-outside", "zone-haram"); got != tracker.StateOutside {
		t.Errorf("outside seed: expected OUTSIDE, got %s", got)
	}
}

// TestEvaluate_ExitEmitsOnce covers INSIDE then OUTSIDE: exactly one exit.
func TestEvaluate_ExitEmitsOnce(t *testing.T) {
	zones := []geofence.Geofence{haramZone()}
	tr := tracker.New()

	tr.Evaluate("m1", insideLat, insideLon, zones)
	transitions := tr.Evaluate("m1", outsideLat, outsideLon, zones)

	if len(transitions) != 1 {
		t.Fatalf("expected 1 transition, got %d", len(transitions))
	}
	tran := transitions[0]
	if tran.ZoneID != "zone-haram" || tran.MemberID != "m1" || tran.GroupID != "group-1" {
		t.Errorf("unexpected transition identity: %+v", tran)
	}
	if tran.ZoneName != "Masjid al-Haram" {
		t.Errorf("expected zone name snapshot, got %q", tran.ZoneName)
	}
	if math.Abs(tran.DistanceMeters-278) > 2 {
		t.Errorf("expected distance ~278m, got %f", tran.DistanceMeters)
	}
	if tran.Latitude != outsideLat || tran.Longitude != outsideLon {
		t.Errorf("expected breach coordinates, got (%f, %f)", tran.Latitude, tran.Longitude)
	}
}

// TestEvaluate_RepeatedOutsideIsQuiet covers OUTSIDE, INSIDE, OUTSIDE,
// OUTSIDE: exactly one exit, none for the repeated outside sample.
func TestEvaluate_RepeatedOutsideIsQuiet(t *testing.T) {
	zones := []geofence.Geofence{haramZone()}
	tr := tracker.New()

	var total int
	for _, pos := range [][2]float64{
		{outsideLat, outsideLon}, // seed outside
		{insideLat, insideLon},   // re-entry, silent
		{outsideLat, outsideLon}, // exit
		{outsideLat, outsideLon}, // still outside, silent
	} {
		total += len(tr.Evaluate("m1", pos[0], pos[1], zones))
	}

	if total != 1 {
		t.Errorf("expected exactly 1 exit, got %d", total)
	}
}

// TestEvaluate_ReentryIsSilent verifies OUTSIDE→INSIDE flips state without
// emitting anything.
func TestEvaluate_ReentryIsSilent(t *testing.T) {
	zones := []geofence.Geofence{haramZone()}
	tr := tracker.New()

	tr.Evaluate("m1", outsideLat, outsideLon, zones)
	if got := tr.Evaluate("m1", insideLat, insideLon, zones); len(got) != 0 {
		t.Errorf("expected silent re-entry, got %d transitions", len(got))
	}
	if got := tr.StateOf("m1", "zone-haram"); got != tracker.StateInside {
		t.Errorf("expected INSIDE after re-entry, got %s", got)
	}
}

// TestEvaluate_BoundaryCountsAsInside pins the boundary rule: a sample at
// exactly the radius distance is inside, so stepping onto the boundary from
// inside emits nothing.
func TestEvaluate_BoundaryCountsAsInside(t *testing.T) {
	zone := haramZone()
	// Make the radius exactly the distance to the test point so
	// distance == radius at the second sample.
	zone.RadiusMeters = distanceBetween(insideLat, insideLon, outsideLat, outsideLon)
	zones := []geofence.Geofence{zone}

	tr := tracker.New()
	tr.Evaluate("m1", insideLat, insideLon, zones)
	if got := tr.Evaluate("m1", outsideLat, outsideLon, zones); len(got) != 0 {
		t.Errorf("expected boundary sample to count as inside, got %d transitions", len(got))
	}
	if got := tr.StateOf("m1", "zone-haram"); got != tracker.StateInside {
		t.Errorf("expected INSIDE on the boundary, got %s", got)
	}
}

// TestEvaluate_FlappingScenario is the full reference walk: seed inside,
// exit (~278 m), return to center silently, exit again. Two transitions in
// total, one per exit, with no cooldown suppression.
func TestEvaluate_FlappingScenario(t *testing.T) {
	zones := []geofence.Geofence{haramZone()}
	tr := tracker.New()

	if got := tr.Evaluate("m1", insideLat, insideLon, zones); len(got) != 0 {
		t.Fatalf("sample A: expected seed with no alert, got %d", len(got))
	}

	exits := tr.Evaluate("m1", outsideLat, outsideLon, zones)
	if len(exits) != 1 {
		t.Fatalf("sample B: expected 1 exit, got %d", len(exits))
	}
	if math.Abs(exits[0].DistanceMeters-278) > 2 {
		t.Errorf("sample B: expected distance ~278m, got %f", exits[0].DistanceMeters)
	}

	if got := tr.Evaluate("m1", insideLat, insideLon, zones); len(got) != 0 {
		t.Fatalf("sample C: expected silent re-entry, got %d", len(got))
	}

	if got := tr.Evaluate("m1", outsideLat, outsideLon, zones); len(got) != 1 {
		t.Fatalf("sample D: expected a second exit, got %d", len(got))
	}
}

// TestEvaluate_MultipleZones verifies one sample produces at most one
// transition per zone, independently.
func TestEvaluate_MultipleZones(t *testing.T) {
	inner := haramZone()
	outer := haramZone()
	outer.ID = "zone-outer"
	outer.Name = "Haram outer perimeter"
	outer.RadiusMeters = 1000
	zones := []geofence.Geofence{inner, outer}

	tr := tracker.New()
	tr.Evaluate("m1", insideLat, insideLon, zones)

	// ~278 m: outside the 200 m zone, still inside the 1000 m zone.
	transitions := tr.Evaluate("m1", outsideLat, outsideLon, zones)
	if len(transitions) != 1 {
		t.Fatalf("expected 1 transition, got %d", len(transitions))
	}
	if transitions[0].ZoneID != "zone-haram" {
		t.Errorf("expected exit from inner zone, got %s", transitions[0].ZoneID)
	}
	if got := tr.StateOf("m1", "zone-outer"); got != tracker.StateInside {
		t.Errorf("expected still INSIDE outer zone, got %s", got)
	}
}

// TestForget_ReseedsWithoutAlert verifies teardown clears state so the next
// sample seeds silently even if the member left while inside.
func TestForget_ReseedsWithoutAlert(t *testing.T) {
	zones := []geofence.Geofence{haramZone()}
	tr := tracker.New()

	tr.Evaluate("m1", insideLat, insideLon, zones)
	tr.Forget("m1")

	if got := tr.StateOf("m1", "zone-haram"); got != tracker.StateUnknown {
		t.Fatalf("expected UNKNOWN after Forget, got %s", got)
	}
	// Outside sample right after reconnect: seed, not exit.
	if got := tr.Evaluate("m1", outsideLat, outsideLon, zones); len(got) != 0 {
		t.Errorf("expected silent reseed, got %d transitions", len(got))
	}
}

// TestForget_OtherMembersUntouched verifies Forget is scoped to one member.
func TestForget_OtherMembersUntouched(t *testing.T) {
	zones := []geofence.Geofence{haramZone()}
	tr := tracker.New()

	tr.Evaluate("m1", insideLat, insideLon, zones)
	tr.Evaluate("m2", insideLat, insideLon, zones)
	tr.Forget("m1")

	if got := tr.StateOf("m2", "zone-haram"); got != tracker.StateInside {
		t.Errorf("expected m2 still INSIDE, got %s", got)
	}
	// m2's exit still fires normally.
	if got := tr.Evaluate("m2", outsideLat, outsideLon, zones); len(got) != 1 {
		t.Errorf("expected m2 exit, got %d transitions", len(got))
	}
}

// TestEvaluate_ConcurrentMembers hammers the tracker from many goroutines,
// one per member, and checks each member saw exactly one exit. Run with
// -race to exercise the locking.
func TestEvaluate_ConcurrentMembers(t *testing.T) {
	zones := []geofence.Geofence{haramZone()}
	tr := tracker.New()

	const members = 32
	var wg sync.WaitGroup
	exits := make([]int, members)
	for i := 0; i < members; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			memberID := fmt.Sprintf("m%d", i)
			tr.Evaluate(memberID, insideLat, insideLon, zones)
			exits[i] = len(tr.Evaluate(memberID, outsideLat, outsideLon, zones))
		}(i)
	}
	wg.Wait()

	for i, n := range exits {
		if n != 1 {
			t.Errorf("member %d: expected 1 exit, got %d", i, n)
		}
	}
}

func distanceBetween(lat1, lon1, lat2, lon2 float64) float64 {
	return geo.DistanceMeters(lat1, lon1, lat2, lon2)
}
