package config

import (
	"slices"
	"strings"
)

// Gallery actions that can be bound in the [keybindings] section.
const (
	ActionQuit             = "quit"
	ActionToggleHelp       = "toggle_help"
	ActionNextCollection   = "next_collection"
	ActionResetView        = "reset_view"
	ActionPanLeft          = "pan_left"
	ActionPanRight         = "pan_right"
	ActionPanUp            = "pan_up"
	ActionPanDown          = "pan_down"
	ActionOpenDetail       = "open_detail"
	ActionFilterTag        = "filter_tag"
	ActionClearFilter      = "clear_filter"
	ActionExpandScope      = "expand_scope"
	ActionToggleLabels     = "toggle_labels"
	ActionToggleThumbnails = "toggle_thumbnails"
	ActionToggleLogs       = "toggle_logs"
	ActionToggleDebug      = "toggle_debug"
	ActionSnapshot         = "snapshot"
)

// Actions lists every bindable action in help order.
func Actions() []string {
	return []string{
		ActionPanLeft, ActionPanRight, ActionPanUp, ActionPanDown,
		ActionResetView, ActionOpenDetail,
		ActionNextCollection, ActionFilterTag, ActionClearFilter, ActionExpandScope,
		ActionToggleLabels, ActionToggleThumbnails, ActionSnapshot,
		ActionToggleLogs, ActionToggleDebug, ActionToggleHelp, ActionQuit,
	}
}

// DefaultKeybindings returns the stock action to keys map.
func DefaultKeybindings() map[string][]string {
	return map[string][]string{
		ActionQuit:             {"q", "ctrl+c"},
		ActionToggleHelp:       {"?"},
		ActionNextCollection:   {"tab"},
		ActionResetView:        {"home", "0"},
		ActionPanLeft:          {"left", "h"},
		ActionPanRight:         {"right", "l"},
		ActionPanUp:            {"up", "k"},
		ActionPanDown:          {"down", "j"},
		ActionOpenDetail:       {"enter"},
		ActionFilterTag:        {"/"},
		ActionClearFilter:      {"x"},
		ActionExpandScope:      {"e"},
		ActionToggleLabels:     {"i"},
		ActionToggleThumbnails: {"p"},
		ActionToggleLogs:       {"L"},
		ActionToggleDebug:      {"D"},
		ActionSnapshot:         {"s"},
	}
}

var actionDescriptions = map[string]string{
	ActionQuit:             "Quit",
	ActionToggleHelp:       "Toggle help",
	ActionNextCollection:   "Next collection",
	ActionResetView:        "Back to origin",
	ActionPanLeft:          "Pan left",
	ActionPanRight:         "Pan right",
	ActionPanUp:            "Pan up",
	ActionPanDown:          "Pan down",
	ActionOpenDetail:       "Open the centred artwork",
	ActionFilterTag:        "Filter by tag",
	ActionClearFilter:      "Clear tag filter",
	ActionExpandScope:      "Search all collections",
	ActionToggleLabels:     "Toggle titles",
	ActionToggleThumbnails: "Toggle thumbnails",
	ActionToggleLogs:       "Toggle log viewer",
	ActionToggleDebug:      "Toggle debug overlay",
	ActionSnapshot:         "Save PNG snapshot",
}

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// KeybindRegistry resolves pressed keys to actions.
type KeybindRegistry struct {
	byKey    map[string]string
	byAction map[string][]string
}

// NewKeybindRegistry builds a registry from an action to keys map. Unknown
// actions are skipped and the first action to claim a key keeps it.
func NewKeybindRegistry(bindings map[string][]string) *KeybindRegistry {
	r := &KeybindRegistry{
		byKey:    make(map[string]string),
		byAction: make(map[string][]string),
	}
	for _, action := range Actions() {
		keys, ok := bindings[action]
		if !ok {
			keys = DefaultKeybindings()[action]
		}
		for _, key := range keys {
			key = normalizeKey(key)
			if key == "" {
				continue
			}
			if _, taken := r.byKey[key]; taken {
				continue
			}
			r.byKey[key] = action
			r.byAction[action] = append(r.byAction[action], key)
		}
	}
	return r
}

// normalizeKey lowercases modifier names but keeps single characters as typed,
// so "L" and "l" stay distinct.
func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if len([]rune(key)) == 1 {
		return key
	}
	return strings.ToLower(key)
}

// Action returns the action bound to key, or "".
func (r *KeybindRegistry) Action(key string) string {
	if r == nil {
		return ""
	}
	return r.byKey[normalizeKey(key)]
}

// Keys returns the keys bound to action.
func (r *KeybindRegistry) Keys(action string) []string {
	if r == nil {
		return nil
	}
	return slices.Clone(r.byAction[action])
}

// GetKeybindings returns all keybinding sections for the help menu.
// A nil registry falls back to the stock bindings.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(DefaultKeybindings())
	}

	groups := []struct {
		title   string
		actions []string
	}{
		{"Canvas", []string{ActionPanLeft, ActionPanRight, ActionPanUp, ActionPanDown, ActionResetView, ActionOpenDetail}},
		{"Collections", []string{ActionNextCollection, ActionFilterTag, ActionClearFilter, ActionExpandScope}},
		{"Display", []string{ActionToggleLabels, ActionToggleThumbnails, ActionSnapshot, ActionToggleLogs, ActionToggleDebug}},
		{"System", []string{ActionToggleHelp, ActionQuit}},
	}

	sections := make([]KeybindingSection, 0, len(groups)+2)
	sections = append(sections, KeybindingSection{
		Title: "Mouse",
		Bindings: []Keybinding{
			{"Drag", "Pan the canvas (release to coast)"},
			{"Click", "Open artwork details"},
			{"Wheel", "Scroll the canvas"},
		},
	})
	for _, g := range groups {
		section := KeybindingSection{Title: g.title}
		for _, action := range g.actions {
			addBinding(&section, registry, action, actionDescriptions[action])
		}
		if len(section.Bindings) > 0 {
			sections = append(sections, section)
		}
	}
	sections = append(sections, getDetailKeybindings())
	return sections
}

func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.Keys(action)
	if len(keys) == 0 {
		return
	}
	section.Bindings = append(section.Bindings, Keybinding{
		Key:         strings.Join(keys, "/"),
		Description: description,
	})
}

func getDetailKeybindings() KeybindingSection {
	return KeybindingSection{
		Title: "Detail view",
		Bindings: []Keybinding{
			{"1-6", "Filter by tag"},
			{"c", "Copy object link"},
			{"up/down", "Scroll description"},
			{"esc/q", "Close"},
		},
	}
}
