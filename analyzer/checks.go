package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// The engine deliberately matches raw markup with regular expressions rather
// than building a DOM. Malformed pages that a strict parser would reject
// still score here, and that tolerance is part of the scoring contract.
var (
	headingOpenRe = regexp.MustCompile(`(?i)<h([1-6])[^>]*>`)
	titleTagRe    = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	ogTitleRe     = regexp.MustCompile(`(?i)<meta[^>]*property=["']og:title["'][^>]*>`)
	descMetaRe    = regexp.MustCompile(`(?i)<meta[^>]*(?:name=["']description["']|property=["']og:description["'])[^>]*>`)
	contentAttrRe = regexp.MustCompile(`(?i)content=["']([^"']*)["']`)
	authorMetaRe  = regexp.MustCompile(`(?i)<meta[^>]*(?:name=["']author["']|property=["']article:author["'])[^>]*>`)
	articleTimeRe = regexp.MustCompile(`(?i)article:(?:published|modified)_time`)

	ariaAttrRe    = regexp.MustCompile(`(?i)(?:\srole=|aria-)`)
	frameworkRe   = regexp.MustCompile(`(?i)(?:data-reactroot|data-reactid|id=["']__next["']|ng-version=|data-v-[0-9a-f]|id=["']__nuxt["']|data-sveltekit)`)
	imgTagRe      = regexp.MustCompile(`(?i)<img[^>]*>`)
	ariaLabelRe   = regexp.MustCompile(`(?i)aria-label=`)
	ariaDescRe    = regexp.MustCompile(`(?i)aria-describedby=`)
	roleAttrRe    = regexp.MustCompile(`(?i)role=["'][^"']+["']`)
	langAttrRe    = regexp.MustCompile(`(?i)\slang=["'][^"']+["']`)

	faqSchemaRe   = regexp.MustCompile(`(?i)(?:FAQPage|schema\.org/Question|"@type"\s*:\s*"Question")`)
	detailsTagRe  = regexp.MustCompile(`(?i)<details[\s>]`)
	faqHeadingRe  = regexp.MustCompile(`(?is)<h[1-6][^>]*>[^<]*(?:faq|question|help|support)`)
	tocMarkerRe   = regexp.MustCompile(`(?i)(?:table\s+of\s+contents|id=["']toc["']|class=["'][^"']*\btoc\b[^"']*["'])`)
	breadcrumbRe  = regexp.MustCompile(`(?i)(?:breadcrumb|BreadcrumbList)`)
	anchorLinkRe  = regexp.MustCompile(`(?i)<a[^>]+href=["']#[^"']+["']`)
	relatedRe     = regexp.MustCompile(`(?i)(?:related\s+(?:articles|posts|content)|see\s+also|you\s+might\s+also\s+like|further\s+reading)`)
	authorSigRe   = regexp.MustCompile(`(?i)(?:written\s+by|posted\s+by|rel=["']author["']|class=["'][^"']*\bauthor\b[^"']*["']|schema\.org/Person|"@type"\s*:\s*"Person")`)
	dateSignalRe  = regexp.MustCompile(`(?i)(?:article:published_time|article:modified_time|datetime=|<time[\s>]|published|updated|last\s+modified)`)
	citationRe    = regexp.MustCompile(`(?i)(?:according\s+to|research\s+(?:shows|suggests)|stud(?:y|ies)\s+(?:show|shows|found)|source:|references|citations?|\[\d+\])`)
	expertiseRe   = regexp.MustCompile(`(?i)(?:\bexpert\b|certified|ph\.?d\b|professor|years\s+of\s+experience|specialist)`)
	semanticTagRe = map[string]*regexp.Regexp{}
)

var semanticTags = []string{"article", "nav", "main", "section", "header", "footer", "aside"}

// questionPatterns is the fixed list of FAQ phrasing regexes. Each match is
// worth 3 points, capped at 35 across the whole list.
var questionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)what\s+is\b`),
	regexp.MustCompile(`(?i)how\s+to\b`),
	regexp.MustCompile(`(?i)why\s+does\b`),
	regexp.MustCompile(`(?i)when\s+should\b`),
	regexp.MustCompile(`(?i)where\s+can\b`),
	regexp.MustCompile(`(?i)frequently\s+asked\s+questions`),
	regexp.MustCompile(`(?i)common\s+questions`),
	regexp.MustCompile(`(?i)\bq\s*&\s*a\b`),
}

func init() {
	for _, tag := range semanticTags {
		semanticTagRe[tag] = regexp.MustCompile(`(?i)<` + tag + `[\s>]`)
	}
}

func (c *Config) analyzeHeadingStructure(html string) CheckResult {
	matches := headingOpenRe.FindAllStringSubmatch(html, -1)

	levels := make([]int, 0, len(matches))
	h1Count := 0
	for _, m := range matches {
		level, _ := strconv.Atoi(m[1])
		levels = append(levels, level)
		if level == 1 {
			h1Count++
		}
	}

	score := 100.0
	if h1Count == 0 {
		score -= 40
	} else if h1Count > 1 {
		score -= 30
	}

	breaks := 0
	for i := 1; i < len(levels); i++ {
		if levels[i]-levels[i-1] > 1 {
			breaks++
		}
	}
	score -= float64(breaks) * 15
	score = clampScore(score)

	details := fmt.Sprintf("%d H1 tag(s), %d heading(s) total", h1Count, len(levels))
	if breaks > 0 {
		details += fmt.Sprintf(", %d hierarchy jump(s)", breaks)
	}

	rec, items := recommend(CheckHeadingStructure, recoData{
		Score: score, H1Count: h1Count, HierarchyBreaks: breaks,
	})
	return CheckResult{
		ID:             CheckHeadingStructure,
		Label:          "Heading Structure",
		Status:         c.statusFor(CheckHeadingStructure, score),
		Score:          score,
		Details:        details,
		Recommendation: rec,
		ActionItems:    items,
	}
}

func (c *Config) analyzeReadability(text string) CheckResult {
	raw := FleschReadingEase(text)

	// Bucketed score independent of the raw clamp; status tracks the bucket.
	var score float64
	var status Status
	switch {
	case raw >= 70:
		score, status = 100, StatusPass
	case raw >= 50:
		score, status = 80, StatusPass
	case raw >= 30:
		score, status = 50, StatusWarning
	default:
		score, status = 20, StatusFail
	}

	band := "very difficult"
	switch {
	case raw >= 70:
		band = "easy"
	case raw >= 50:
		band = "fairly readable"
	case raw >= 30:
		band = "difficult"
	}
	details := fmt.Sprintf("Flesch Reading Ease %.1f (%s)", raw, band)

	rec, items := recommend(CheckReadability, recoData{Score: score})
	return CheckResult{
		ID:             CheckReadability,
		Label:          "Readability",
		Status:         status,
		Score:          score,
		Details:        details,
		Recommendation: rec,
		ActionItems:    items,
	}
}

func (c *Config) analyzeMetaTags(html string, meta PageMetadata) CheckResult {
	score := 30.0
	var found, missing []string

	hasTitleTag := titleTagRe.MatchString(html)
	hasStrongTitle := ogTitleRe.MatchString(html) || meta.Title != "" || meta.OGTitle != ""
	switch {
	case hasStrongTitle:
		score += 30
		found = append(found, "title")
	case hasTitleTag:
		score += 20
		found = append(found, "title tag only")
	default:
		missing = append(missing, "title")
	}

	descMatch := descMetaRe.FindString(html)
	hasDesc := descMatch != "" || meta.Description != "" || meta.OGDescription != ""
	descLen := 0
	if descMatch != "" {
		if cm := contentAttrRe.FindStringSubmatch(descMatch); cm != nil {
			descLen = len(cm[1])
		}
	} else if meta.Description != "" {
		descLen = len(meta.Description)
	}
	if hasDesc {
		score += 25
		found = append(found, "description")
		if descLen >= 70 && descLen <= 160 {
			score += 10
		}
	} else {
		missing = append(missing, "description")
	}

	hasAuthor := authorMetaRe.MatchString(html) || meta.Author != ""
	if hasAuthor {
		score += 10
		found = append(found, "author")
	} else {
		missing = append(missing, "author")
	}

	hasDates := articleTimeRe.MatchString(html)
	if hasDates {
		score += 10
		found = append(found, "article dates")
	} else {
		missing = append(missing, "article dates")
	}

	score = clampScore(score)
	details := "Found: " + joinOrNone(found)
	if len(missing) > 0 {
		details += "; missing: " + strings.Join(missing, ", ")
	}

	rec, items := recommend(CheckMetaTags, recoData{
		Score:          score,
		HasTitle:       hasStrongTitle || hasTitleTag,
		HasDescription: hasDesc,
		DescLength:     descLen,
		HasAuthor:      hasAuthor,
		HasDates:       hasDates,
	})
	return CheckResult{
		ID:             CheckMetaTags,
		Label:          "Meta Tags",
		Status:         c.statusFor(CheckMetaTags, score),
		Score:          score,
		Details:        details,
		Recommendation: rec,
		ActionItems:    items,
	}
}

func (c *Config) analyzeSemanticHTML(html string) CheckResult {
	var present []string
	for _, tag := range semanticTags {
		if semanticTagRe[tag].MatchString(html) {
			present = append(present, tag)
		}
	}

	hasAria := ariaAttrRe.MatchString(html)
	hasFramework := frameworkRe.MatchString(html)

	score := float64(len(present)) / 5 * 60
	if hasAria {
		score += 20
	}
	if hasFramework {
		score += 20
	}
	score = clampScore(score)

	details := "Semantic elements: " + joinOrNone(present)
	if hasAria {
		details += "; ARIA attributes present"
	}
	if hasFramework {
		details += "; modern framework markup detected"
	}

	rec, items := recommend(CheckSemanticHTML, recoData{Score: score})
	return CheckResult{
		ID:             CheckSemanticHTML,
		Label:          "Semantic HTML",
		Status:         c.statusFor(CheckSemanticHTML, score),
		Score:          score,
		Details:        details,
		Recommendation: rec,
		ActionItems:    items,
	}
}

func (c *Config) analyzeAccessibility(html string) CheckResult {
	imgs := imgTagRe.FindAllString(html, -1)
	withAlt := 0
	for _, img := range imgs {
		if strings.Contains(strings.ToLower(img), "alt=") {
			withAlt++
		}
	}

	var score float64
	if len(imgs) == 0 {
		score = 40
	} else {
		score = float64(withAlt) / float64(len(imgs)) * 100 * 0.4
	}

	hasAriaLabel := ariaLabelRe.MatchString(html)
	hasAriaDesc := ariaDescRe.MatchString(html)
	hasRole := roleAttrRe.MatchString(html)
	hasLang := langAttrRe.MatchString(html)
	if hasAriaLabel {
		score += 20
	}
	if hasAriaDesc {
		score += 10
	}
	if hasRole {
		score += 15
	}
	if hasLang {
		score += 15
	}
	score = clampScore(score)

	details := fmt.Sprintf("%d/%d images with alt text", withAlt, len(imgs))
	if len(imgs) == 0 {
		details = "No images found"
	}
	var extra []string
	if hasAriaLabel {
		extra = append(extra, "aria-label")
	}
	if hasAriaDesc {
		extra = append(extra, "aria-describedby")
	}
	if hasRole {
		extra = append(extra, "role")
	}
	if hasLang {
		extra = append(extra, "lang")
	}
	if len(extra) > 0 {
		details += "; " + strings.Join(extra, ", ") + " present"
	}

	rec, items := recommend(CheckAccessibility, recoData{
		Score:        score,
		ImgCount:     len(imgs),
		ImgWithAlt:   withAlt,
		HasAriaLabel: hasAriaLabel,
		HasRole:      hasRole,
		HasLang:      hasLang,
	})
	return CheckResult{
		ID:             CheckAccessibility,
		Label:          "Accessibility",
		Status:         c.statusFor(CheckAccessibility, score),
		Score:          score,
		Details:        details,
		Recommendation: rec,
		ActionItems:    items,
	}
}

func (c *Config) analyzeFAQStructure(html string) CheckResult {
	score := 0.0
	var found []string

	hasSchema := faqSchemaRe.MatchString(html)
	if hasSchema {
		score += 30
		found = append(found, "FAQ schema")
	}

	detailsCount := len(detailsTagRe.FindAllString(html, -1))
	if detailsCount > 0 {
		score += minFloat(float64(detailsCount)*5, 25)
		found = append(found, fmt.Sprintf("%d expandable section(s)", detailsCount))
	}

	questionCount := 0
	for _, re := range questionPatterns {
		questionCount += len(re.FindAllString(html, -1))
	}
	if questionCount > 0 {
		score += minFloat(float64(questionCount)*3, 35)
		found = append(found, fmt.Sprintf("%d question pattern(s)", questionCount))
	}

	if faqHeadingRe.MatchString(html) {
		score += 10
		found = append(found, "FAQ heading")
	}

	score = clampScore(score)
	details := "Found: " + joinOrNone(found)

	rec, items := recommend(CheckFAQStructure, recoData{
		Score:         score,
		HasSchema:     hasSchema,
		DetailsCount:  detailsCount,
		QuestionCount: questionCount,
	})
	return CheckResult{
		ID:             CheckFAQStructure,
		Label:          "FAQ Structure",
		Status:         c.statusFor(CheckFAQStructure, score),
		Score:          score,
		Details:        details,
		Recommendation: rec,
		ActionItems:    items,
	}
}

func (c *Config) analyzeContentStructure(html string) CheckResult {
	score := 0.0
	var found []string

	if tocMarkerRe.MatchString(html) {
		score += 25
		found = append(found, "table of contents")
	}
	if breadcrumbRe.MatchString(html) {
		score += 20
		found = append(found, "breadcrumbs")
	}

	anchors := len(anchorLinkRe.FindAllString(html, -1))
	if anchors > 0 {
		score += minFloat(float64(anchors)*2, 20)
		found = append(found, fmt.Sprintf("%d anchor link(s)", anchors))
	}

	if relatedRe.MatchString(html) {
		score += 15
		found = append(found, "related content")
	}

	headings := len(headingOpenRe.FindAllString(html, -1))
	if headings >= 3 {
		score += minFloat(float64(headings)*2, 20)
		found = append(found, fmt.Sprintf("%d heading(s)", headings))
	}

	score = clampScore(score)
	details := "Found: " + joinOrNone(found)

	rec, items := recommend(CheckContentStructure, recoData{Score: score})
	return CheckResult{
		ID:             CheckContentStructure,
		Label:          "Content Structure",
		Status:         c.statusFor(CheckContentStructure, score),
		Score:          score,
		Details:        details,
		Recommendation: rec,
		ActionItems:    items,
	}
}

func (c *Config) analyzeTopicalAuthority(html, text string, meta PageMetadata) CheckResult {
	score := 0.0
	var found []string

	hasAuthor := meta.Author != "" || authorSigRe.MatchString(html)
	if hasAuthor {
		score += 25
		found = append(found, "author")
	}

	if dateSignalRe.MatchString(html) {
		score += 20
		found = append(found, "dates")
	}

	citations := len(citationRe.FindAllString(html, -1))
	if citations > 0 {
		score += minFloat(float64(citations)*3, 25)
		found = append(found, fmt.Sprintf("%d citation signal(s)", citations))
	}

	wordCount := len(strings.Fields(text))
	if wordCount > 1500 {
		score += 15
		found = append(found, "in-depth content")
	} else if wordCount > 800 {
		score += 10
		found = append(found, "substantial content")
	}

	if expertiseRe.MatchString(html) {
		score += 15
		found = append(found, "expertise keywords")
	}

	score = clampScore(score)
	details := fmt.Sprintf("Found: %s (%d words)", joinOrNone(found), wordCount)

	rec, items := recommend(CheckTopicalAuthority, recoData{
		Score:        score,
		HasAuthor:    hasAuthor,
		WordCount:    wordCount,
		HasCitations: citations > 0,
	})
	return CheckResult{
		ID:             CheckTopicalAuthority,
		Label:          "Topical Authority",
		Status:         c.statusFor(CheckTopicalAuthority, score),
		Score:          score,
		Details:        details,
		Recommendation: rec,
		ActionItems:    items,
	}
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
