package wireframe

// DefaultProps returns the placeholder properties a freshly detected
// component of type t starts with. Every call returns a new map, so
// callers may modify the result freely.
func DefaultProps(t ComponentType) map[string]any {
	switch t {
	case Navbar:
		return map[string]any{
			"logo":  "Logo",
			"links": []string{"Home", "About", "Contact"},
		}
	case Hero:
		return map[string]any{
			"headline":    "Your Headline Here",
			"subheadline": "Supporting text goes here",
			"cta":         "Get Started",
		}
	case Section:
		return map[string]any{
			"title":   "Section Title",
			"content": "Section content...",
		}
	case Card:
		return map[string]any{
			"title":       "Card Title",
			"description": "Card description",
		}
	case Form:
		return map[string]any{
			"fields":     []string{"Name", "Email", "Message"},
			"submitText": "Submit",
		}
	case Button:
		return map[string]any{
			"text":    "Button",
			"variant": "primary",
		}
	case Text:
		return map[string]any{"content": "Text"}
	case Image:
		return map[string]any{"alt": "Image", "src": ""}
	case Sidebar:
		return map[string]any{
			"items": []string{"Dashboard", "Settings", "Help"},
		}
	case Footer:
		return map[string]any{
			"links":     []string{"Privacy", "Terms", "Contact"},
			"copyright": "© 2024",
		}
	case Table:
		return map[string]any{
			"columns": []string{"Column 1", "Column 2", "Column 3"},
			"rows":    5,
		}
	case Calendar:
		return map[string]any{"view": "month"}
	case Chart:
		return map[string]any{"type": "bar"}
	case Input:
		return map[string]any{
			"placeholder": "Enter text...",
			"type":        "text",
		}
	case Heading:
		return map[string]any{"text": "Heading", "level": 1}
	case BottomNav:
		return map[string]any{
			"items": []string{"Home", "Search", "Profile"},
		}
	case Frame:
		return map[string]any{"title": "Frame"}
	}
	return map[string]any{}
}
