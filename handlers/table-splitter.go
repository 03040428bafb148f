package handlers

// splitIntoTabularFormat chunks input into rows of at most perRow items.
func splitIntoTabularFormat[K any](input []K, perRow int) [][]K {
	if len(input) == 0 || perRow < 1 {
		return [][]K{}
	}
	result := make([][]K, 0, (len(input)+perRow-1)/perRow)
	for start := 0; start < len(input); start += perRow {
		end := start + perRow
		if end > len(input) {
			end = len(input)
		}
		result = append(result, input[start:end:end])
	}
	return result
}
