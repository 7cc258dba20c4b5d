package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// FrequencyToCron — derivación de expresión cron desde minutos
// ──────────────────────────────────────────────────────────────────────────────

func TestFrequencyToCron_Derivacion(t *testing.T) {
	cases := map[int]string{
		5:    "*/5 * * * *",
		15:   "*/15 * * * *",
		59:   "*/59 * * * *",
		60:   "0 * * * *",
		120:  "0 */2 * * *",
		360:  "0 */6 * * *",
		90:   "0 */1 * * *", // no es múltiplo de hora: se redondea a horas completas
		1440: "0 0 * * *",
		2880: "0 0 * * *", // más de un día sigue siendo diario
		1500: "0 1 * * *", // diario, a la hora derivada
	}
	for minutes, want := range cases {
		got, err := FrequencyToCron(minutes)
		require.NoError(t, err, "minutos: %d", minutes)
		assert.Equal(t, want, got, "minutos: %d", minutes)
	}
}

func TestFrequencyToCron_FrecuenciaInvalida(t *testing.T) {
	for _, minutes := range []int{0, -15} {
		_, err := FrequencyToCron(minutes)
		assert.Error(t, err, "minutos: %d", minutes)
	}
}
