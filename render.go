package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"zxdeck/qasm"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given visible width, truncating it
// when it does not fit.
func padCenter(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		runes := []rune(s)
		if len(runes) > width {
			runes = runes[:width]
		}
		return string(runes)
	}
	total := width - w
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

func roleSymbol(r role) string {
	switch r {
	case roleControl:
		return "●"
	case roleXor:
		return "⊕"
	case roleSwap:
		return "×"
	}
	return ""
}

// ──────────────────────────── Cell rendering ────────────────────────────

type cellHighlight int

const (
	hlNone cellHighlight = iota
	hlCursor
)

// renderCell returns 3 lines (top, mid, bot) for a single cell.
// Each line is exactly cellW (11) visual characters wide.
func renderCell(info cellInfo, hl cellHighlight) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	dblVertRow := strings.Repeat(" ", halfW) + cbitConnectorStyle.Render("║") + strings.Repeat(" ", cellW-halfW-1)
	style := gateStyleFor(info.gate)

	// ── Highlighted cell ──
	if hl == hlCursor {
		bdr := cursorBoxStyle
		innerW := cellW - 2
		dashL := (innerW - 1) / 2
		dashR := innerW - dashL - 1

		if info.isBarrier {
			top = vertRow
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + "│" + strings.Repeat("─", dashR) + bdr.Render("║")
			bot = vertRow
			return
		}

		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")

		switch {
		case info.operand && info.role != roleBox:
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + style.Render(roleSymbol(info.role)) + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.operand:
			name := padCenter(info.gate.Label, gateNameW)
			mid = bdr.Render("║") + "─┤" + style.Render(name) + "├─" + bdr.Render("║")
		case info.passThrough:
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR) + bdr.Render("║")
		case info.measureBelow:
			mid = bdr.Render("║") + strings.Repeat("─", dashL) + cbitConnectorStyle.Render("╫") + strings.Repeat("─", dashR) + bdr.Render("║")
		default:
			mid = bdr.Render("║") + strings.Repeat("─", innerW) + bdr.Render("║")
		}
		return
	}

	// ── Normal (non-highlighted) cells ──
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1
	margin := (cellW - gateBoxW) / 2
	rightMargin := cellW - margin - gateBoxW

	switch {
	case info.isBarrier:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "│" + strings.Repeat("─", dashR)
		bot = vertRow

	case info.operand && info.role != roleBox:
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", dashL) + style.Render(roleSymbol(info.role)) + strings.Repeat("─", dashR)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}

	case info.operand:
		name := padCenter(info.gate.Label, gateNameW)
		top = strings.Repeat(" ", margin) + style.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		if info.vertAbove {
			top = strings.Repeat(" ", margin) + style.Render("┌"+strings.Repeat("─", gateNameW/2)+"┴"+strings.Repeat("─", gateNameW-gateNameW/2-1)+"┐") + strings.Repeat(" ", rightMargin)
		}
		mid = strings.Repeat("─", margin) + style.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + style.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
		if info.vertBelow {
			bot = strings.Repeat(" ", margin) + style.Render("└"+strings.Repeat("─", gateNameW/2)+"┬"+strings.Repeat("─", gateNameW-gateNameW/2-1)+"┘") + strings.Repeat(" ", rightMargin)
		}
		if info.gate.isMeasure() {
			bot = dblVertRow
		}

	case info.passThrough:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
		bot = vertRow

	case info.measureBelow:
		// A measurement connection passes through vertically.
		top = dblVertRow
		mid = strings.Repeat("─", dashL) + cbitConnectorStyle.Render("╫") + strings.Repeat("─", dashR)
		bot = dblVertRow

	default:
		// Empty wire
		top = emptyRow
		mid = strings.Repeat("─", cellW)
		bot = emptyRow
	}
	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	circ := m.currentCircuit()
	title := "Original Circuit"
	if m.view == viewOptimized {
		title = "Optimized Circuit"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("  ")
	sb.WriteString(runPalette[0].Render("■"))
	sb.WriteString(dimStyle.Render(" run  "))
	sb.WriteString(passthroughStyle.Render("■"))
	sb.WriteString(dimStyle.Render(" passthrough  "))
	sb.WriteString(conditionedStyle.Render("■"))
	sb.WriteString(dimStyle.Render(" conditioned"))
	sb.WriteString("\n\n")

	if circ == nil || circ.NumQubits == 0 {
		sb.WriteString(dimStyle.Render("  (no qubits)"))
		sb.WriteString("\n")
		m.writeStatus(&sb)
		return circuitStyle.Width(width).Height(height).Render(sb.String())
	}

	// How many steps fit
	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/cellW, 1)

	startStep := 0
	if m.cursorStep >= maxSteps {
		startStep = m.cursorStep - maxSteps + 1
	}
	displaySteps := maxSteps

	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, startStep+displaySteps-1)
	}

	// Step number header
	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < startStep+displaySteps; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	// Render each qubit as 3 lines
	for qubit := range circ.NumQubits {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("q[%d]", qubit)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := startStep; step < startStep+displaySteps; step++ {
			info := circ.getCellInfo(step, qubit)

			hl := hlNone
			if step == m.cursorStep && qubit == m.cursorQubit && m.focus != focusQASM {
				hl = hlCursor
			}

			top, mid, bot := renderCell(info, hl)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	// ── Classical bit wire (single line) ──
	if circ.NumCbits > 0 {
		sepLine := strings.Repeat(" ", labelVisualW)
		for step := startStep; step < startStep+displaySteps; step++ {
			halfW := cellW / 2
			if circ.GetMeasureAtStep(step) >= 0 {
				sepLine += strings.Repeat(" ", halfW) + cbitConnectorStyle.Render("║") + strings.Repeat(" ", cellW-halfW-1)
			} else {
				sepLine += strings.Repeat(" ", cellW)
			}
		}
		sb.WriteString(sepLine + "\n")

		label := fmt.Sprintf("c%d", circ.NumCbits)
		cbitLine := cbitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + cbitWireStyle.Render("══")
		for step := startStep; step < startStep+displaySteps; step++ {
			bit := circ.GetMeasureAtStep(step)
			if bit >= 0 {
				bitLabel := fmt.Sprintf("%d", bit)
				dashL := (cellW - 1) / 2
				dashR := max(cellW-dashL-1-len(bitLabel), 0)
				cbitLine += cbitWireStyle.Render(strings.Repeat("═", dashL)) +
					cbitConnectorStyle.Render("╩"+bitLabel) +
					cbitWireStyle.Render(strings.Repeat("═", dashR))
			} else {
				cbitLine += cbitWireStyle.Render(strings.Repeat("═", cellW))
			}
		}
		sb.WriteString(cbitLine + "\n")
	}

	m.writeStatus(&sb)
	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// writeStatus appends the cursor position, the gate under it and any
// transient message.
func (m Model) writeStatus(sb *strings.Builder) {
	fmt.Fprintf(sb, "\n  Position: Step %d, Qubit %d", m.cursorStep, m.cursorQubit)
	if g := m.gateUnderCursor(); g != nil {
		fmt.Fprintf(sb, "  │  %s", describeGate(g))
	}
	if m.statusMsg != "" {
		fmt.Fprintf(sb, "  │  %s", activeGateStyle.Render(m.statusMsg))
	}
}

// describeGate renders the node under the cursor as QASM with its segment.
func describeGate(g *Gate) string {
	stmt, err := qasm.Statement(g.Node)
	if err != nil {
		stmt = g.Node.Op.Name
	}
	switch {
	case g.Segment < 0:
		return stmt
	case g.InRun:
		return fmt.Sprintf("%s  [run #%d]", stmt, g.Segment)
	default:
		return fmt.Sprintf("%s  [passthrough #%d]", stmt, g.Segment)
	}
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM Editor"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderStatsPanel renders the pass report and, when enabled, the
// measurement probabilities of the optimized circuit.
func (m Model) renderStatsPanel(width, height int) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("ZX Pass"))
	fmt.Fprintf(&sb, "  %s\n", dimStyle.Render(m.optimizerSummary()))

	res := m.result
	switch {
	case res == nil:
	case res.err != nil:
		sb.WriteString(errorStyle.Render("Error: "))
		sb.WriteString(res.err.Error())
		sb.WriteString("\n")
	case res.report != nil:
		r := res.report
		fmt.Fprintf(&sb, "Segments  %d runs, %d passthroughs\n", r.Runs, r.Passthroughs)
		fmt.Fprintf(&sb, "Size      %d → %d\n", r.SizeIn, r.SizeOut)
		fmt.Fprintf(&sb, "Depth     %d → %d\n", r.DepthIn, r.DepthOut)
		fmt.Fprintf(&sb, "Run gates %d → %d\n", r.GatesIn, r.GatesOut)
		fmt.Fprintf(&sb, "T-count   %d → %d\n", r.TCountIn, r.TCountOut)
		fmt.Fprintf(&sb, "Took      %s\n", r.Duration)
	}

	if res != nil && res.err == nil {
		switch {
		case res.equivalent == nil:
			sb.WriteString(dimStyle.Render("Equivalence not checked"))
		case *res.equivalent:
			sb.WriteString(okStyle.Render("✓ equivalent to original"))
		default:
			sb.WriteString(errorStyle.Render("✗ NOT equivalent to original"))
		}
		sb.WriteString("\n")
	}

	if m.showProbs && res != nil && len(res.probs) > 0 {
		sb.WriteString("\n")
		sb.WriteString(activeGateStyle.Render("P(|1⟩)"))
		sb.WriteString("\n")
		barW := max(width-16, 4)
		for q, p := range res.probs {
			filled := int(p.Prob1*float64(barW) + 0.5)
			fmt.Fprintf(&sb, "%s %s %5.1f%%\n",
				qubitLabelStyle.Render(fmt.Sprintf("q[%d]", q)),
				okStyle.Render(strings.Repeat("█", filled))+dimStyle.Render(strings.Repeat("░", barW-filled)),
				p.Prob1*100)
		}
	}

	return statsStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Move qubit  ←→/hl Move step  o Original/optimized")
	sb.WriteString("    ")
	sb.WriteString(activeGateStyle.Render("r"))
	sb.WriteString(" Rewrite rules\n")

	sb.WriteString(activeGateStyle.Render("Actions:  "))
	sb.WriteString("Tab Switch focus  a Apply optimized  p Probabilities  ^S Save  q/^C Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at position (x, y).
// It handles ANSI escape sequences by tracking visible column positions.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// isEscapeFinal reports whether r terminates an ANSI escape sequence.
func isEscapeFinal(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

// spliceLineAt replaces visible columns starting at position x in bgLine with overlay content.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	var prefix, suffix strings.Builder
	col, i := 0, 0

	// Collect prefix: everything up to visible column x
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				r := runes[i]
				prefix.WriteRune(r)
				i++
				if r != '\x1b' && r != '[' && isEscapeFinal(r) {
					break
				}
			}
			continue
		}
		prefix.WriteRune(runes[i])
		col++
		i++
	}

	// Pad prefix if bg line is shorter than x
	for col < x {
		prefix.WriteRune(' ')
		col++
	}

	// Skip over ovWidth visible columns in the background
	skipped := 0
	for i < len(runes) && skipped < ovWidth {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				r := runes[i]
				i++
				if r != '\x1b' && r != '[' && isEscapeFinal(r) {
					break
				}
			}
			continue
		}
		skipped++
		i++
	}

	for ; i < len(runes); i++ {
		suffix.WriteRune(runes[i])
	}
	return prefix.String() + overlay + suffix.String()
}

// visibleLen returns the number of visible (non-ANSI-escape) characters in a string.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if isEscapeFinal(r) {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}
