package analyzer

import (
	"strings"
	"testing"
)

func TestRecommend_UnknownIDFallsBack(t *testing.T) {
	rec, items := recommend("mystery-metric", recoData{})
	if rec != "Improve this aspect of the page for better machine consumption." {
		t.Errorf("Unexpected fallback recommendation: %q", rec)
	}
	if len(items) != 1 || items[0] != "Review and optimize this metric" {
		t.Errorf("Unexpected fallback action items: %v", items)
	}
}

func TestRecommend_HeadingBranches(t *testing.T) {
	rec, _ := recommend(CheckHeadingStructure, recoData{H1Count: 0})
	if !strings.Contains(rec, "Add a single H1") {
		t.Errorf("Expected missing-H1 advice, got %q", rec)
	}

	rec, _ = recommend(CheckHeadingStructure, recoData{H1Count: 3})
	if !strings.Contains(rec, "Consolidate") {
		t.Errorf("Expected multiple-H1 advice, got %q", rec)
	}

	rec, _ = recommend(CheckHeadingStructure, recoData{H1Count: 1, HierarchyBreaks: 2})
	if !strings.Contains(rec, "skip more than one step") {
		t.Errorf("Expected hierarchy advice, got %q", rec)
	}

	rec, _ = recommend(CheckHeadingStructure, recoData{H1Count: 1})
	if !strings.Contains(rec, "looks solid") {
		t.Errorf("Expected healthy-structure advice, got %q", rec)
	}
}

func TestRecommend_MetaTagsItems(t *testing.T) {
	t.Run("nothing missing yields no items", func(t *testing.T) {
		rec, items := recommend(CheckMetaTags, recoData{
			Score: 100, HasTitle: true, HasDescription: true,
			DescLength: 120, HasAuthor: true, HasDates: true,
		})
		if !strings.Contains(rec, "good shape") {
			t.Errorf("Expected healthy advice, got %q", rec)
		}
		if len(items) != 0 {
			t.Errorf("Expected no items, got %v", items)
		}
	})

	t.Run("short description triggers a length item", func(t *testing.T) {
		_, items := recommend(CheckMetaTags, recoData{
			Score: 65, HasTitle: true, HasDescription: true,
			DescLength: 20, HasAuthor: true, HasDates: true,
		})
		if len(items) != 1 || !strings.Contains(items[0], "70-160") {
			t.Errorf("Expected description length item, got %v", items)
		}
	})

	t.Run("everything missing lists each gap", func(t *testing.T) {
		_, items := recommend(CheckMetaTags, recoData{Score: 30})
		if len(items) != 4 {
			t.Errorf("Expected 4 items, got %v", items)
		}
	})
}

func TestRecommend_AccessibilityItems(t *testing.T) {
	_, items := recommend(CheckAccessibility, recoData{
		Score: 20, ImgCount: 3, ImgWithAlt: 1,
	})
	if len(items) != 4 {
		t.Errorf("Expected 4 items, got %v", items)
	}
	if !strings.Contains(items[0], "alt text") {
		t.Errorf("Expected alt-text item first, got %v", items)
	}

	_, items = recommend(CheckAccessibility, recoData{
		Score: 100, ImgCount: 2, ImgWithAlt: 2,
		HasAriaLabel: true, HasRole: true, HasLang: true,
	})
	if len(items) != 0 {
		t.Errorf("Expected no items for full coverage, got %v", items)
	}
}

func TestRecommend_FileChecks(t *testing.T) {
	rec, _ := recommend(CheckRobotsTxt, recoData{})
	if !strings.Contains(rec, "robots.txt") {
		t.Errorf("Unexpected robots recommendation: %q", rec)
	}

	rec, _ = recommend(CheckSitemap, recoData{})
	if !strings.Contains(rec, "sitemap") {
		t.Errorf("Unexpected sitemap recommendation: %q", rec)
	}

	rec, items := recommend(CheckLlmsTxt, recoData{})
	if !strings.Contains(rec, "llms.txt") {
		t.Errorf("Unexpected llms recommendation: %q", rec)
	}
	if len(items) != 2 {
		t.Errorf("Expected 2 llms items, got %v", items)
	}
}
