package scope

import "github.com/za-lang/zkcc/internal/zkerr"

func errIndexIntoValue(idx int) error {
	return zkerr.New(zkerr.InvalidSelector, "index at [%d] contains a value, not a list", idx)
}

func errIndexTooLarge(idx int) error {
	return zkerr.New(zkerr.InvalidSelector, "index at [%d] too large", idx)
}

func errInvalidIndex() error {
	return zkerr.New(zkerr.InvalidSelector, "invalid index")
}
