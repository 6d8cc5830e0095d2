package analyzer

// recoData carries the diagnostic fields an analyzer hands to the
// recommendation table. Only the fields relevant to the metric are set.
type recoData struct {
	Score           float64
	H1Count         int
	HierarchyBreaks int
	HasTitle        bool
	HasDescription  bool
	DescLength      int
	HasAuthor       bool
	HasDates        bool
	ImgCount        int
	ImgWithAlt      int
	HasAriaLabel    bool
	HasRole         bool
	HasLang         bool
	HasSchema       bool
	DetailsCount    int
	QuestionCount   int
	WordCount       int
	HasCitations    bool
}

// recommend maps a metric id plus its diagnostics to a single-sentence
// recommendation and an ordered list of action items. Unknown ids fall back
// to a generic entry; this function never fails.
func recommend(id string, d recoData) (string, []string) {
	switch id {
	case CheckHeadingStructure:
		if d.H1Count == 0 {
			return "Add a single H1 heading that states the page topic.",
				[]string{
					"Add one H1 tag near the top of the page",
					"Use H2-H6 for subsections in descending order",
				}
		}
		if d.H1Count > 1 {
			return "Consolidate multiple H1 headings into one.",
				[]string{
					"Keep a single H1 and demote the others to H2",
					"Check that heading levels never skip more than one step",
				}
		}
		if d.HierarchyBreaks > 0 {
			return "Fix heading levels that skip more than one step.",
				[]string{
					"Insert intermediate heading levels where the hierarchy jumps",
					"Review the document outline with an accessibility tool",
				}
		}
		return "Heading structure looks solid; keep one H1 and sequential levels.",
			[]string{"Maintain the current heading hierarchy as content grows"}

	case CheckReadability:
		if d.Score <= 20 {
			return "Rewrite dense passages; the text is very hard to read.",
				[]string{
					"Shorten sentences to under 20 words where possible",
					"Replace jargon with plain language",
					"Break long paragraphs into smaller ones",
				}
		}
		if d.Score <= 50 {
			return "Simplify sentence structure to improve readability.",
				[]string{
					"Split compound sentences",
					"Prefer common words over technical vocabulary",
				}
		}
		return "Readability is good; keep sentences short and direct.",
			[]string{"Keep paragraphs focused on a single idea"}

	case CheckMetaTags:
		items := []string{}
		if !d.HasTitle {
			items = append(items, "Add a descriptive <title> and og:title")
		}
		if !d.HasDescription {
			items = append(items, "Add a meta description of 70-160 characters")
		} else if d.DescLength < 70 || d.DescLength > 160 {
			items = append(items, "Adjust the meta description length into the 70-160 character range")
		}
		if !d.HasAuthor {
			items = append(items, "Add an author meta tag or article:author property")
		}
		if !d.HasDates {
			items = append(items, "Add article:published_time and article:modified_time")
		}
		if d.Score >= 70 {
			return "Metadata is in good shape; keep it current as the page changes.", filterEmpty(items)
		}
		return "Fill in the missing metadata so machines can describe this page.", filterEmpty(items)

	case CheckSemanticHTML:
		return "Use semantic HTML5 elements instead of generic divs.",
			[]string{
				"Wrap the main content in <main> and <article>",
				"Use <nav>, <header>, <footer> and <section> for page regions",
				"Add ARIA roles where no native element fits",
			}

	case CheckAccessibility:
		items := []string{}
		if d.ImgCount > 0 && d.ImgWithAlt < d.ImgCount {
			items = append(items, "Add alt text to every image")
		}
		if !d.HasAriaLabel {
			items = append(items, "Label interactive controls with aria-label")
		}
		if !d.HasRole {
			items = append(items, "Add role attributes to custom widgets")
		}
		if !d.HasLang {
			items = append(items, "Declare the document language with a lang attribute")
		}
		return "Improve accessibility markup so assistive tools and parsers can navigate the page.",
			filterEmpty(items)

	case CheckFAQStructure:
		if d.Score < 40 {
			return "Add a FAQ section with question-formatted headings.",
				[]string{
					"Create a FAQ section answering common user questions",
					"Mark it up with FAQPage schema.org structured data",
					"Use <details>/<summary> for expandable answers",
				}
		}
		return "Extend the existing FAQ coverage with structured markup.",
			[]string{
				"Add FAQPage schema if not present",
				"Phrase headings as questions users actually ask",
			}

	case CheckContentStructure:
		if d.Score < 50 {
			return "Add navigational structure so readers and machines can find their way.",
				[]string{
					"Add a table of contents with in-page anchor links",
					"Add breadcrumb navigation with BreadcrumbList schema",
					"Link to related content at the end of the page",
				}
		}
		return "Content organization is reasonable; deepen internal linking.",
			[]string{"Add more in-page anchors for long sections"}

	case CheckTopicalAuthority:
		if d.Score < 60 {
			return "Add authorship, dates and sources to establish credibility.",
				[]string{
					"Show the author with a byline and Person schema",
					"Display published and updated dates",
					"Cite sources and link references",
				}
		}
		return "Strengthen authority signals with more citations and author detail.",
			[]string{
				"Expand author bios with credentials",
				"Reference primary sources where claims are made",
			}

	case CheckRobotsTxt:
		return "Publish a robots.txt that welcomes crawlers and lists your sitemap.",
			[]string{
				"Serve /robots.txt with at least one User-agent group",
				"Add a Sitemap: directive pointing at your sitemap",
			}

	case CheckSitemap:
		return "Publish an XML sitemap so crawlers can discover your pages.",
			[]string{
				"Generate /sitemap.xml and keep it current",
				"Reference the sitemap from robots.txt",
			}

	case CheckLlmsTxt:
		return "Publish an llms.txt file describing your site for AI systems.",
			[]string{
				"Create /llms.txt with a short site summary and key links",
				"Optionally add llms-full.txt with expanded content",
			}
	}

	return "Improve this aspect of the page for better machine consumption.",
		[]string{"Review and optimize this metric"}
}

// filterEmpty drops empty strings from conditional action-item lists.
func filterEmpty(items []string) []string {
	out := items[:0]
	for _, it := range items {
		if it != "" {
			out = append(out, it)
		}
	}
	return out
}
