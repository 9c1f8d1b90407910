// Package quality scores a generated answer along four axes
// (completeness, accuracy, helpfulness, structure) and derives quality
// indicators plus a list of missing elements. Scoring is additive with
// named weights and every axis is capped at 1.0.
package quality

import (
	"regexp"
	"strings"
)

// Institution anchors the accuracy axis: mentioning the institution by
// name or domain counts as institutional grounding.
type Institution struct {
	Name      string
	ShortName string
	Domain    string
}

// Report is the validator output for one query/response pair.
type Report struct {
	Completeness float64
	Accuracy     float64
	Helpfulness  float64
	Structure    float64
	Overall      float64

	Indicators      map[string]bool
	MissingElements []string
}

// Completeness weights.
const (
	weightIdealLength      = 0.3
	weightAcceptableLength = 0.1
	weightContactInfo      = 0.2
	weightActionable       = 0.2
	weightSpecifics        = 0.2
	weightAddressesQuery   = 0.1
)

// Accuracy weights.
const (
	accuracyBase        = 0.5
	weightContextUsage  = 0.3
	weightInstitutional = 0.2
)

// Helpfulness weights.
const (
	weightAnswersDirectly = 0.3
	weightAdditionalValue = 0.2
	weightTone            = 0.2
	weightNextSteps       = 0.3
)

// Structure weight, applied per matched structural element.
const weightStructuralElement = 0.2

const (
	idealLengthMin      = 100
	idealLengthMax      = 2000
	acceptableLengthMin = 50
	queryCoverageRatio  = 0.3
)

var (
	contactRe   = regexp.MustCompile(`\b\d{3}-\d{3}-\d{4}\b|\b\w+@\w+\.edu\.mx\b|ext\.\s*\d+`)
	specificsRe = regexp.MustCompile(`\d{2}:\d{2}|\$\d+|ext\.\s*\d+|requisitos?|documentos?`)
	iconsRe     = regexp.MustCompile(`[📞📧📍🎓💻🏛️]`)
	boldRe      = regexp.MustCompile(`\*\*.*\*\*`)
	listRe      = regexp.MustCompile(`(?m)[•·]|^\s*[-*]\s`)
	phoneRe     = regexp.MustCompile(`📞.*\d{3}-\d{3}-\d{4}`)
	ctaRe       = regexp.MustCompile(`(?i)🚀|💡|✅.*paso`)
	scheduleRe  = regexp.MustCompile(`\d{1,2}:\d{2}`)
	structureRe = regexp.MustCompile(`[📞📧📍🎓💻]|\*\*`)
)

var actionableVerbs = []string{"contacta", "visita", "solicita", "consulta", "agenda", "presenta"}

var additionalValueMarkers = []string{"también", "además", "adicionalmente", "te recomiendo", "puedes", "opcionalmente"}

var toneMarkers = []string{"ayudar", "asistir", "apoyar", "gusto", "disposición"}

var nextStepMarkers = []string{"siguiente paso", "próximo", "luego", "después", "te recomiendo", "contacta", "visita"}

type Validator struct {
	institution Institution
}

func NewValidator(institution Institution) *Validator {
	return &Validator{institution: institution}
}

// Validate scores a response against the query it answers and the
// context snippets that were available during generation. It is pure
// and never fails.
func (v *Validator) Validate(query, response string, contextItems []string) Report {
	lowerQuery := strings.ToLower(query)
	lowerResponse := strings.ToLower(response)

	r := Report{
		Completeness: v.scoreCompleteness(lowerQuery, response, lowerResponse),
		Accuracy:     v.scoreAccuracy(response, lowerResponse, contextItems),
		Helpfulness:  v.scoreHelpfulness(query, lowerQuery, response, lowerResponse),
		Structure:    v.scoreStructure(response),
	}
	r.Overall = (r.Completeness + r.Accuracy + r.Helpfulness + r.Structure) / 4

	r.Indicators = map[string]bool{
		"has_contact_info":     contactRe.MatchString(response),
		"has_actionable_info":  containsAny(lowerResponse, actionableVerbs),
		"has_specific_details": specificsRe.MatchString(lowerResponse),
		"appropriate_length":   len(response) >= idealLengthMin && len(response) <= idealLengthMax,
		"well_structured":      structureRe.MatchString(response),
		"empathetic_tone":      containsAny(lowerResponse, toneMarkers),
	}
	r.MissingElements = v.missingElements(lowerQuery, response, lowerResponse, r.Indicators)

	return r
}

func (v *Validator) scoreCompleteness(lowerQuery, response, lowerResponse string) float64 {
	score := 0.0

	switch n := len(response); {
	case n >= idealLengthMin && n <= idealLengthMax:
		score += weightIdealLength
	case n >= acceptableLengthMin:
		score += weightAcceptableLength
	}

	if contactRe.MatchString(response) {
		score += weightContactInfo
	}
	if containsAny(lowerResponse, actionableVerbs) {
		score += weightActionable
	}
	if specificsRe.MatchString(lowerResponse) {
		score += weightSpecifics
	}
	if addressesMainQuery(lowerQuery, lowerResponse) {
		score += weightAddressesQuery
	}

	return capScore(score)
}

func (v *Validator) scoreAccuracy(response, lowerResponse string, contextItems []string) float64 {
	score := accuracyBase

	score += weightContextUsage * contextUsage(lowerResponse, contextItems)

	lowerName := strings.ToLower(v.institution.Name)
	lowerShort := strings.ToLower(v.institution.ShortName)
	if (lowerShort != "" && strings.Contains(lowerResponse, lowerShort)) ||
		(lowerName != "" && strings.Contains(lowerResponse, lowerName)) ||
		(v.institution.Domain != "" && strings.Contains(lowerResponse, v.institution.Domain)) {
		score += weightInstitutional
	}

	return capScore(score)
}

func (v *Validator) scoreHelpfulness(query, lowerQuery, response, lowerResponse string) float64 {
	score := 0.0

	if answersDirectly(query, lowerQuery, response, lowerResponse) {
		score += weightAnswersDirectly
	}
	if containsAny(lowerResponse, additionalValueMarkers) {
		score += weightAdditionalValue
	}
	if containsAny(lowerResponse, toneMarkers) {
		score += weightTone
	}
	if containsAny(lowerResponse, nextStepMarkers) {
		score += weightNextSteps
	}

	return capScore(score)
}

func (v *Validator) scoreStructure(response string) float64 {
	score := 0.0

	for _, re := range []*regexp.Regexp{iconsRe, boldRe, listRe, phoneRe, ctaRe} {
		if re.MatchString(response) {
			score += weightStructuralElement
		}
	}

	return capScore(score)
}

func (v *Validator) missingElements(lowerQuery, response, lowerResponse string, indicators map[string]bool) []string {
	var missing []string

	if !indicators["has_contact_info"] {
		missing = append(missing, "información_de_contacto")
	}
	if !indicators["has_actionable_info"] {
		missing = append(missing, "pasos_accionables")
	}
	if strings.Contains(lowerQuery, "requisitos") && !strings.Contains(lowerResponse, "requisitos") {
		missing = append(missing, "requisitos_específicos")
	}
	if strings.Contains(lowerQuery, "horario") && !scheduleRe.MatchString(response) {
		missing = append(missing, "horarios_específicos")
	}

	return missing
}

// addressesMainQuery checks how many significant query words (longer
// than three characters) reappear in the response.
func addressesMainQuery(lowerQuery, lowerResponse string) bool {
	var significant, present int
	for _, word := range strings.Fields(lowerQuery) {
		if len([]rune(word)) <= 3 {
			continue
		}
		significant++
		if strings.Contains(lowerResponse, word) {
			present++
		}
	}
	if significant == 0 {
		return false
	}
	return float64(present)/float64(significant) >= queryCoverageRatio
}

func answersDirectly(query, lowerQuery, response, lowerResponse string) bool {
	if strings.Contains(query, "?") {
		return len(response) > acceptableLengthMin && !strings.Contains(lowerResponse, "no tengo información")
	}
	return addressesMainQuery(lowerQuery, lowerResponse)
}

// contextUsage is the mean fraction of each context snippet's
// significant words that reappear in the response.
func contextUsage(lowerResponse string, contextItems []string) float64 {
	if len(contextItems) == 0 {
		return 0
	}

	total := 0.0
	for _, item := range contextItems {
		var significant, present int
		for _, word := range strings.Fields(strings.ToLower(item)) {
			if len([]rune(word)) <= 3 {
				continue
			}
			significant++
			if strings.Contains(lowerResponse, word) {
				present++
			}
		}
		if significant > 0 {
			total += float64(present) / float64(significant)
		}
	}

	return total / float64(len(contextItems))
}

func containsAny(lower string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func capScore(score float64) float64 {
	if score > 1.0 {
		return 1.0
	}
	return score
}
