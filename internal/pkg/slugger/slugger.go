package slugger

import (
	"math/rand/v2"
	"strconv"

	"github.com/gosimple/slug"
)

// suffixSpace is 36^6; suffixes are up to six base36 characters.
const suffixSpace = 36 * 36 * 36 * 36 * 36 * 36

// Generate derives a URL-safe slug from the title plus a random base36
// suffix. The suffix only lowers the collision chance for duplicate titles;
// uniqueness is enforced by the database index.
func Generate(title string) string {
	return slug.Make(title) + "-" + strconv.FormatUint(rand.Uint64N(suffixSpace), 36)
}
