package core

// Landmark names read by the squat detector
const (
	LandmarkLeftHip  = "left_hip"
	LandmarkRightHip = "right_hip"
)

// COCO/MoveNet keypoint indices used when landmarks carry no names
const (
	LeftHipIndex  = 11
	RightHipIndex = 12
)

var landmarkAliases = map[string][]string{
	LandmarkLeftHip:  {"left_hip", "leftHip"},
	LandmarkRightHip: {"right_hip", "rightHip"},
}

var landmarkIndex = map[string]int{
	LandmarkLeftHip:  LeftHipIndex,
	LandmarkRightHip: RightHipIndex,
}

// Keypoint is a single body landmark in sensor coordinates (y grows downward)
type Keypoint struct {
	Name       string  `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// Pose is one immutable keypoint set delivered by the sensor
type Pose struct {
	Keypoints []Keypoint `json:"keypoints"`
}

// Find returns the landmark by canonical name, accepting camelCase aliases and
// falling back to the well-known index when no name matches
func (p *Pose) Find(name string) (Keypoint, bool) {
	if p == nil {
		return Keypoint{}, false
	}
	for _, alias := range landmarkAliases[name] {
		for _, kp := range p.Keypoints {
			if kp.Name == alias {
				return kp, true
			}
		}
	}
	if idx, ok := landmarkIndex[name]; ok && idx < len(p.Keypoints) {
		return p.Keypoints[idx], true
	}
	return Keypoint{}, false
}

// StandingPose builds a two-hip pose at height y
func StandingPose(y float64) Pose {
	return Pose{Keypoints: []Keypoint{
		{Name: LandmarkLeftHip, X: 300, Y: y, Confidence: 1},
		{Name: LandmarkRightHip, X: 340, Y: y, Confidence: 1},
	}}
}

// SquatState is the detector's repetition state
type SquatState uint8

const (
	SquatUp SquatState = iota
	SquatDown
)

func (s SquatState) String() string {
	if s == SquatDown {
		return "Down"
	}
	return "Up"
}
