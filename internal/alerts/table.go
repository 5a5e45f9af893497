package alerts

import "github.com/banshee-data/pathguard/internal/zones"

// rule matches when every zone of all is present and, if any is non-empty,
// at least one zone of any is present.
type rule struct {
	all   zones.Set
	any   zones.Set
	alert Alert
}

func (r rule) matches(s zones.Set) bool {
	if !s.HasAll(r.all) {
		return false
	}
	return r.any.Empty() || s.HasAny(r.any)
}

var (
	sides    = zones.Of(zones.Left, zones.Right)
	vertical = zones.Of(zones.Center, zones.High, zones.Low)
)

// decisionTable is evaluated top to bottom; the first matching rule wins.
// Obstacle rules precede every step and pit rule.
var decisionTable = []rule{
	{all: sides.Union(zones.Of(zones.LeftWall, zones.RightWall)), any: vertical, alert: Stop},
	{all: sides.Add(zones.LeftWall), any: vertical, alert: LeftHuge},
	{all: sides.Add(zones.RightWall), any: vertical, alert: RightHuge},
	{all: sides, any: vertical, alert: RightHuge},
	{all: zones.Of(zones.Right), any: vertical, alert: RightBig},
	{all: zones.Of(zones.Left), any: vertical, alert: LeftBig},
	{all: sides, alert: Narrow},
	{all: zones.Of(zones.Center), alert: Center},
	{all: zones.Of(zones.Right), alert: Right},
	{all: zones.Of(zones.Left), alert: Left},
	{all: zones.Of(zones.AlmostOnStep), alert: AlmostOnStep},
	{all: zones.Of(zones.StepUp), alert: StepUp},
	{all: zones.Of(zones.StepDown), alert: StepDown},
	{all: zones.Of(zones.Pit), alert: Pit},
	{all: zones.Of(zones.High), alert: High},
	{all: zones.Of(zones.Low), alert: Low},
}

// Decide applies the decision table to a zone set.
func Decide(s zones.Set) Alert {
	for _, r := range decisionTable {
		if r.matches(s) {
			return r.alert
		}
	}
	return None
}
