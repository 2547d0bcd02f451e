package core

import (
	"fmt"
	"testing"
)

func TestParsePhaseRoundTrip(t *testing.T) {
	for p := PhaseMenu; p < PhaseCount; p++ {
		got, ok := ParsePhase(p.String())
		if !ok || got != p {
			t.Errorf("ParsePhase(%q) = %v, %v; want %v", p.String(), got, ok, p)
		}
	}
	if _, ok := ParsePhase("Shift"); ok {
		t.Error("composite state name must not parse as a phase")
	}
}

func TestClockRunning(t *testing.T) {
	running := map[Phase]bool{PhaseCharging: true, PhaseAssembling: true}
	for p := PhaseMenu; p < PhaseCount; p++ {
		if p.ClockRunning() != running[p] {
			t.Errorf("%s.ClockRunning() = %v", p, p.ClockRunning())
		}
	}
}

func TestParseIngredient(t *testing.T) {
	tests := []struct {
		in   string
		want Ingredient
	}{
		{"tomato", IngredientTomato},
		{"lettuce", IngredientLettuce},
		{"cheese", IngredientCheese},
		{"patty", IngredientPatty},
		{"bun", IngredientUnknown},
		{"", IngredientUnknown},
	}
	for _, tt := range tests {
		if got := ParseIngredient(tt.in); got != tt.want {
			t.Errorf("ParseIngredient(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if IngredientUnknown.Valid() || Ingredient(7).Valid() {
		t.Error("out-of-range ingredients must be invalid")
	}
}

func TestPoseFind(t *testing.T) {
	named := StandingPose(200)
	if kp, ok := named.Find(LandmarkLeftHip); !ok || kp.Y != 200 {
		t.Errorf("Find(left_hip) = %+v, %v", kp, ok)
	}

	camel := Pose{Keypoints: []Keypoint{{Name: "leftHip", Y: 10}, {Name: "rightHip", Y: 20}}}
	if kp, ok := camel.Find(LandmarkRightHip); !ok || kp.Y != 20 {
		t.Errorf("camelCase alias not resolved: %+v, %v", kp, ok)
	}

	unnamed := Pose{Keypoints: make([]Keypoint, 17)}
	unnamed.Keypoints[LeftHipIndex].Y = 42
	if kp, ok := unnamed.Find(LandmarkLeftHip); !ok || kp.Y != 42 {
		t.Errorf("index fallback not used: %+v, %v", kp, ok)
	}

	// Foreign naming scheme: names miss, index still resolves
	foreign := Pose{Keypoints: make([]Keypoint, 17)}
	for i := range foreign.Keypoints {
		foreign.Keypoints[i].Name = fmt.Sprintf("kp%d", i)
	}
	foreign.Keypoints[RightHipIndex].Y = 77
	if kp, ok := foreign.Find(LandmarkRightHip); !ok || kp.Y != 77 {
		t.Errorf("index fallback skipped for named set: %+v, %v", kp, ok)
	}

	partial := Pose{Keypoints: []Keypoint{{Name: "nose"}}}
	if _, ok := partial.Find(LandmarkLeftHip); ok {
		t.Error("missing hip reported as found")
	}

	var none *Pose
	if _, ok := none.Find(LandmarkLeftHip); ok {
		t.Error("nil pose reported a landmark")
	}
}
