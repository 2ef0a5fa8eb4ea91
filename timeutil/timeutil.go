package timeutil

import (
	"fmt"
	"strconv"
	"time"
)

// Layouts de fecha/hora tal como se guardan en la tabla llegadas.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

// Stamp parte un instante en la fecha y hora de texto que se persisten.
func Stamp(t time.Time) (date, clock string) {
	return t.Format(DateLayout), t.Format(ClockLayout)
}

// parseStamp acepta la hora con o sin segundos.
func parseStamp(date, clock string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, time.Local); err == nil {
		return t, nil
	}
	return time.ParseInLocation(DateLayout+" 15:04", date+" "+clock, time.Local)
}

// DurationMinutes calcula los minutos enteros entre llegada y salida.
// ok=false si falta la salida, si algún campo no parsea o si el resultado
// da negativo (reloj corrido / dato sucio): nunca se muestra negativo.
func DurationMinutes(inDate, inTime string, outDate, outTime *string) (int, bool) {
	if outDate == nil || outTime == nil {
		return 0, false
	}
	in, err := parseStamp(inDate, inTime)
	if err != nil {
		return 0, false
	}
	out, err := parseStamp(*outDate, *outTime)
	if err != nil {
		return 0, false
	}
	mins := int(out.Sub(in).Minutes())
	if mins < 0 {
		return 0, false
	}
	return mins, true
}

// ParseClock convierte "HH:MM" o "HH:MM:SS" a minutos desde medianoche.
func ParseClock(s string) (int, bool) {
	for _, layout := range []string{"15:04", ClockLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}
	return 0, false
}

// IsLate marca tarde cuando la llegada supera la hora esperada por más de
// graceMin. Si cualquiera de las dos horas falta o no parsea devuelve
// false: un dato roto nunca marca tardanza.
func IsLate(arrival, expected string, graceMin int) bool {
	a, ok := ParseClock(arrival)
	if !ok {
		return false
	}
	e, ok := ParseClock(expected)
	if !ok {
		return false
	}
	return a > e+graceMin
}

// MapsURL arma el link externo de mapas para una coordenada capturada.
func MapsURL(lat, lng float64) string {
	return "https://www.google.com/maps?q=" +
		strconv.FormatFloat(lat, 'f', -1, 64) + "," +
		strconv.FormatFloat(lng, 'f', -1, 64)
}

// FormatFix formatea una coordenada para mostrar, a 5 decimales.
func FormatFix(lat, lng float64) string {
	return fmt.Sprintf("%.5f, %.5f", lat, lng)
}
