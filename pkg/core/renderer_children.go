package core

// patchChildren reconciles n1's children into n2's. anchor bounds the
// children of a fragment; it is nil for an element's own children.
func (r *Renderer) patchChildren(n1, n2 *VNode, container, anchor Node, parent *Instance) {
	prevFlags, nextFlags := n1.ShapeFlags, n2.ShapeFlags

	if nextFlags.Has(ShapeTextChildren) {
		if prevFlags.Has(ShapeArrayChildren) {
			r.unmountChildren(n1.Children, parent, true)
		}
		if !prevFlags.Has(ShapeTextChildren) || n1.Text != n2.Text {
			r.host.SetElementText(container, n2.Text)
		}
		return
	}

	switch {
	case prevFlags.Has(ShapeTextChildren):
		r.host.SetElementText(container, "")
		if nextFlags.Has(ShapeArrayChildren) {
			r.mountChildren(n2.Children, container, anchor, parent)
		}
	case prevFlags.Has(ShapeArrayChildren):
		if nextFlags.Has(ShapeArrayChildren) {
			r.patchKeyedChildren(n1.Children, n2.Children, container, anchor, parent)
		} else {
			r.unmountChildren(n1.Children, parent, true)
		}
	default:
		if nextFlags.Has(ShapeArrayChildren) {
			r.mountChildren(n2.Children, container, anchor, parent)
		}
	}
}

// patchKeyedChildren reconciles two child lists with as few host moves as
// possible: common prefix and suffix are patched in place, then the middle is
// resolved by key and only children outside the longest increasing
// subsequence of old positions are moved.
func (r *Renderer) patchKeyedChildren(c1, c2 []*VNode, container, parentAnchor Node, parent *Instance) {
	i := 0
	l2 := len(c2)
	e1 := len(c1) - 1
	e2 := l2 - 1

	// anchorAt returns the host node new children must go in front of to
	// land before c2[idx].
	anchorAt := func(idx int) Node {
		if idx < l2 {
			return c2[idx].El
		}
		return parentAnchor
	}

	// 1. common prefix
	for i <= e1 && i <= e2 {
		n1, n2 := c1[i], c2[i]
		if !isSameVNodeType(n1, n2) {
			break
		}
		r.patch(n1, n2, container, nil, parent)
		i++
	}

	// 2. common suffix
	for i <= e1 && i <= e2 {
		n1, n2 := c1[e1], c2[e2]
		if !isSameVNodeType(n1, n2) {
			break
		}
		r.patch(n1, n2, container, nil, parent)
		e1--
		e2--
	}

	switch {
	// 3. old exhausted: mount the rest
	case i > e1:
		if i <= e2 {
			anchor := anchorAt(e2 + 1)
			for ; i <= e2; i++ {
				r.patch(nil, c2[i], container, anchor, parent)
			}
		}

	// 4. new exhausted: remove the rest
	case i > e2:
		for ; i <= e1; i++ {
			r.unmount(c1[i], parent, true)
		}

	// 5. unknown middle
	default:
		s1, s2 := i, i

		keyToNewIndex := make(map[any]int, e2-s2+1)
		for j := s2; j <= e2; j++ {
			if k := c2[j].Key; k != nil {
				keyToNewIndex[k] = j
			}
		}

		patched := 0
		toBePatched := e2 - s2 + 1
		moved := false
		maxNewIndexSoFar := 0
		// old index + 1 for every new middle position; 0 means new
		newIndexToOldIndex := make([]int, toBePatched)

		for j := s1; j <= e1; j++ {
			prev := c1[j]
			if patched >= toBePatched {
				r.unmount(prev, parent, true)
				continue
			}

			newIndex := -1
			if prev.Key != nil {
				if idx, ok := keyToNewIndex[prev.Key]; ok {
					newIndex = idx
				}
			} else {
				for k := s2; k <= e2; k++ {
					if newIndexToOldIndex[k-s2] == 0 && isSameVNodeType(prev, c2[k]) {
						newIndex = k
						break
					}
				}
			}

			if newIndex < 0 {
				r.unmount(prev, parent, true)
				continue
			}
			newIndexToOldIndex[newIndex-s2] = j + 1
			if newIndex >= maxNewIndexSoFar {
				maxNewIndexSoFar = newIndex
			} else {
				moved = true
			}
			r.patch(prev, c2[newIndex], container, nil, parent)
			patched++
		}

		var stable []int
		if moved {
			stable = longestIncreasingSubsequence(newIndexToOldIndex)
		}
		last := len(stable) - 1
		for j := toBePatched - 1; j >= 0; j-- {
			nextIndex := s2 + j
			next := c2[nextIndex]
			anchor := anchorAt(nextIndex + 1)
			switch {
			case newIndexToOldIndex[j] == 0:
				r.patch(nil, next, container, anchor, parent)
			case !moved:
			case last < 0 || j != stable[last]:
				r.move(next, container, anchor)
			default:
				last--
			}
		}
	}
}
