package models

// Stage is one of the fixed points of the MVI conversation
type Stage string

const (
	StageIdeaCapture             Stage = "ideaCapture"
	StageUserPersonaDiscovery    Stage = "userPersonaDiscovery"
	StageCompetitiveIntelligence Stage = "competitiveIntelligence"
	StageFeaturePrioritization   Stage = "featurePrioritization"
	StageTechnicalRecommendation Stage = "technicalRecommendation"
	StageContextGeneration       Stage = "contextGeneration"
	StageComplete                Stage = "complete"
)

// Stages lists every stage in conversation order
var Stages = []Stage{
	StageIdeaCapture,
	StageUserPersonaDiscovery,
	StageCompetitiveIntelligence,
	StageFeaturePrioritization,
	StageTechnicalRecommendation,
	StageContextGeneration,
	StageComplete,
}

// Index returns the position of s in Stages, or -1 for an unknown label
func (s Stage) Index() int {
	for i, stage := range Stages {
		if stage == s {
			return i
		}
	}
	return -1
}

// UIStage maps the stage onto the five-step vocabulary the web client renders
func (s Stage) UIStage() string {
	switch s {
	case StageIdeaCapture:
		return "idea_capture"
	case StageUserPersonaDiscovery:
		return "persona_discovery"
	case StageCompetitiveIntelligence:
		return "competitive_analysis"
	case StageFeaturePrioritization, StageTechnicalRecommendation:
		return "mvp_definition"
	case StageContextGeneration, StageComplete:
		return "action_plan"
	default:
		return "unknown"
	}
}

func (s Stage) String() string {
	return string(s)
}
