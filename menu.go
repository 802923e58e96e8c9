package main

import (
	"fmt"
	"strings"

	"zxdeck/config"
	"zxdeck/zx"
	"zxdeck/zxpass"
)

const maxLevel = 3

// menuItem represents a single rewrite rule in the menu.
type menuItem struct {
	name    string
	rule    zx.Rule
	example string
}

// ruleMenu lists the rewrite rules the optimizer can be restricted to.
var ruleMenu = []menuItem{
	{name: "Cancel inverses", rule: zx.RuleCancelInverses, example: "H·H → I"},
	{name: "Fuse Z phases", rule: zx.RuleFuseZ, example: "T·S → P"},
	{name: "Fuse X rotations", rule: zx.RuleFuseX, example: "RX·RX → RX"},
	{name: "Fuse Y rotations", rule: zx.RuleFuseY, example: "RY·RY → RY"},
	{name: "Drop identities", rule: zx.RuleDropIdentity, example: "RZ(0) → I"},
}

// openMenu seeds the menu from the active optimizer settings.
func (m *Model) openMenu() {
	cfg := m.analyzer.cfg
	m.menuLevel = *cfg.Level
	m.menuRules = zxpass.LevelRules(m.menuLevel)
	if len(cfg.Rules) > 0 {
		if rules, err := zx.ParseRules(cfg.Rules); err == nil {
			m.menuRules = rules
		}
	}
	m.menuItem = 0
	m.focus = focusMenu
}

// menuConfig turns the menu state into an optimizer config. Rules are only
// listed explicitly when they differ from the level's defaults.
func (m *Model) menuConfig() config.OptimizerConfig {
	cfg := m.analyzer.cfg
	level := m.menuLevel
	cfg.Rules = nil
	if m.menuRules == 0 {
		level = 0
	} else if m.menuRules != zxpass.LevelRules(level) {
		cfg.Rules = m.menuRules.Names()
	}
	cfg.Level = &level
	return cfg
}

// menuKey handles a key press while the menu is open. Row 0 is the level,
// the remaining rows are rules.
func (m *Model) menuKey(key string) {
	switch key {
	case "esc":
		m.focus = focusCircuit
	case "up", "k":
		if m.menuItem > 0 {
			m.menuItem--
		}
	case "down", "j":
		if m.menuItem < len(ruleMenu) {
			m.menuItem++
		}
	case "left", "h":
		if m.menuItem == 0 && m.menuLevel > 0 {
			m.menuLevel--
			m.menuRules = zxpass.LevelRules(m.menuLevel)
		}
	case "right", "l":
		if m.menuItem == 0 && m.menuLevel < maxLevel {
			m.menuLevel++
			m.menuRules = zxpass.LevelRules(m.menuLevel)
		}
	case " ", "space":
		if m.menuItem > 0 {
			m.menuRules ^= ruleMenu[m.menuItem-1].rule
		}
	case "enter":
		a, err := m.analyzer.reconfigure(m.menuConfig())
		if err != nil {
			m.statusMsg = fmt.Sprintf("Optimizer error: %v", err)
			break
		}
		m.analyzer = a
		m.reanalyze()
		m.statusMsg = "Optimizer: " + m.optimizerSummary()
		m.focus = focusCircuit
	}
}

// optimizerSummary describes the active optimizer settings in one line.
func (m Model) optimizerSummary() string {
	if m.analyzer == nil {
		return ""
	}
	cfg := m.analyzer.cfg
	rules := zxpass.LevelRules(*cfg.Level)
	if len(cfg.Rules) > 0 {
		if r, err := zx.ParseRules(cfg.Rules); err == nil {
			rules = r
		}
	}
	names := strings.Join(rules.Names(), ",")
	if names == "" {
		names = "none"
	}
	return fmt.Sprintf("%s v%s  level %d  rules %s", cfg.Plugin, m.analyzer.version, *cfg.Level, names)
}

// renderMenu renders the floating rule-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Rewrite Rules"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 42)))
	sb.WriteString("\n")

	level := fmt.Sprintf("Level  ◀ %d ▶", m.menuLevel)
	if m.menuItem == 0 {
		sb.WriteString(menuSelectedStyle.Render(" ▸ " + level))
	} else {
		sb.WriteString("   " + menuNormalStyle.Render(level))
	}
	sb.WriteString("\n")

	for i, item := range ruleMenu {
		box := "[ ]"
		if m.menuRules&item.rule != 0 {
			box = "[x]"
		}
		if i+1 == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%s %-18s", box, item.name)))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%s %-18s", box, item.name)))
		}
		sb.WriteString(dimStyle.Render(" " + item.example))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Level  Space Toggle  ⏎ Apply  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
