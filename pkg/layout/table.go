package layout

import "github.com/hugozap/volare/pkg/scene"

func (e *engine) measureTable(n scene.TreeNode) (intrinsic, error) {
	table := e.b.Tables[n.Handle.Index]
	children := nonConnectorChildren(n.Children)
	cols := table.Columns
	if cols <= 0 {
		cols = 1
	}
	rows := (len(children) + cols - 1) / cols

	colWidths := make([]float64, cols)
	rowHeights := make([]float64, rows)

	for i, c := range children {
		ci, err := e.measure(c)
		if err != nil {
			return intrinsic{}, err
		}
		col := i % cols
		row := i / cols
		cw := ci.W + 2*table.CellPadding
		ch := ci.H + 2*table.CellPadding
		if cw > colWidths[col] {
			colWidths[col] = cw
		}
		if ch > rowHeights[row] {
			rowHeights[row] = ch
		}
	}

	var totalW, totalH float64
	for _, w := range colWidths {
		totalW += w
	}
	for _, h := range rowHeights {
		totalH += h
	}

	return intrinsic{W: totalW, H: totalH}, nil
}

func (e *engine) arrangeTable(n scene.TreeNode, outer Geometry) error {
	e.geo[n.Handle] = outer
	table := e.b.Tables[n.Handle.Index]
	children := nonConnectorChildren(n.Children)
	cols := table.Columns
	if cols <= 0 {
		cols = 1
	}
	rows := (len(children) + cols - 1) / cols

	colWidths := make([]float64, cols)
	rowHeights := make([]float64, rows)
	intrinsics := make([]intrinsic, len(children))

	for i, c := range children {
		ci, err := e.measure(c)
		if err != nil {
			return err
		}
		intrinsics[i] = ci
		col := i % cols
		row := i / cols
		cw := ci.W + 2*table.CellPadding
		ch := ci.H + 2*table.CellPadding
		if cw > colWidths[col] {
			colWidths[col] = cw
		}
		if ch > rowHeights[row] {
			rowHeights[row] = ch
		}
	}

	colX := make([]float64, cols)
	x := 0.0
	for i, w := range colWidths {
		colX[i] = x
		x += w
	}
	rowY := make([]float64, rows)
	y := 0.0
	for i, h := range rowHeights {
		rowY[i] = y
		y += h
	}

	for i, c := range children {
		col := i % cols
		row := i / cols
		cellX := outer.X + colX[col]
		cellY := outer.Y + rowY[row]
		cellW := colWidths[col]
		cellH := rowHeights[row]

		ci := intrinsics[i]
		cw, ch := e.finalSize(c.Handle, ci, cellW-2*table.CellPadding, cellH-2*table.CellPadding)

		// Cells are centered within their grid slot.
		childX := cellX + table.CellPadding + maxF(0, (cellW-2*table.CellPadding-cw)/2)
		childY := cellY + table.CellPadding + maxF(0, (cellH-2*table.CellPadding-ch)/2)

		if err := e.arrange(c, Geometry{X: childX, Y: childY, W: cw, H: ch}); err != nil {
			return err
		}
	}

	return nil
}
