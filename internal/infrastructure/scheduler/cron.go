package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// FrequencyToCron deriva la expresión cron de una frecuencia en minutos:
//
//	< 60 min          → */N * * * *    (cada N minutos)
//	exactamente 60    → 0 * * * *      (cada hora en punto)
//	horas exactas <1d → 0 */H * * *    (cada H horas)
//	resto < 1 día     → 0 */H * * *    (redondeado a horas completas)
//	1 día o más       → 0 H * * *      (diario, a la hora derivada)
//
// La expresión resultante se valida con el parser estándar antes de
// devolverse.
func FrequencyToCron(minutes int) (string, error) {
	if minutes <= 0 {
		return "", fmt.Errorf("frecuencia inválida: %d minutos", minutes)
	}

	var spec string
	switch {
	case minutes < 60:
		spec = fmt.Sprintf("*/%d * * * *", minutes)
	case minutes == 60:
		spec = "0 * * * *"
	case minutes < 24*60:
		spec = fmt.Sprintf("0 */%d * * *", minutes/60)
	default:
		spec = fmt.Sprintf("0 %d * * *", (minutes/60)%24)
	}

	if _, err := cron.ParseStandard(spec); err != nil {
		return "", fmt.Errorf("expresión derivada inválida %q: %w", spec, err)
	}
	return spec, nil
}
