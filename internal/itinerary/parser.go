// README: Tolerant extraction, validation and live-data overlay of model output.
package itinerary

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"atlas/internal/enrichment"
)

// Parse recovers an Itinerary from raw model output and overlays the live
// destination data onto it. Recovery order: strict parse of the sanitized
// text, then the longest balanced {...} span found in it. The result is
// validated against the required-field checklist before decoding.
func Parse(raw string, dest *enrichment.Destination) (*Itinerary, error) {
	text := sanitize(raw)

	doc, err := decodeObject(text)
	if err != nil {
		candidates := extractCandidates(text)
		if len(candidates) == 0 {
			return nil, &MalformedResponseError{Cause: "no JSON object found in response"}
		}
		text = longest(candidates)
		if doc, err = decodeObject(text); err != nil {
			return nil, &MalformedResponseError{Cause: "embedded JSON object is invalid", Err: err}
		}
	}

	if err := validate(doc); err != nil {
		return nil, err
	}
	dropOverlaid(doc, dest == nil)

	it, err := decodeItinerary(doc)
	if err != nil {
		return nil, err
	}

	for i := range it.Days {
		if it.Days[i].Day == 0 {
			it.Days[i].Day = i + 1
		}
	}

	Overlay(it, dest)
	return it, nil
}

// overlaidSections are replaced by live data in Overlay.
var overlaidSections = []string{"weather", "local_currency", "emergency"}

// dropOverlaid removes the sections Overlay will replace so their shape never
// fails a reply. With keep set (no live data), well-formed sections survive.
func dropOverlaid(doc map[string]any, keep bool) {
	info, ok := doc["additional_info"].(map[string]any)
	if !ok {
		return
	}
	for _, key := range overlaidSections {
		section, ok := info[key].(map[string]any)
		if !keep || !ok || !stringValues(section) {
			delete(info, key)
		}
	}
}

func decodeItinerary(doc map[string]any) (*Itinerary, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, &MalformedResponseError{Cause: "re-encoding response", Err: err}
	}
	var it Itinerary
	if err := json.Unmarshal(data, &it); err != nil {
		mre := &MalformedResponseError{Cause: "itinerary fields have unexpected types", Err: err}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			mre.Field = typeErr.Field
		}
		return nil, mre
	}
	return &it, nil
}

// Overlay replaces the weather, currency and emergency sections with the live
// destination data, whatever the model produced. A nil dest is a no-op.
func Overlay(it *Itinerary, dest *enrichment.Destination) {
	if it == nil || dest == nil {
		return
	}
	info := &it.AdditionalInfo
	info.Weather = Weather{
		Forecast:    dest.Weather.Forecast,
		Temperature: dest.Weather.Temperature,
	}
	info.LocalCurrency = LocalCurrency{
		Code:         dest.Currency.Code,
		ExchangeRate: dest.Currency.ExchangeRate,
	}
	info.Emergency = Emergency{
		Police:        dest.Emergency.Police,
		Ambulance:     dest.Emergency.Ambulance,
		TouristPolice: dest.Emergency.TouristPolice,
	}
}

// sanitize trims whitespace and a code fence wrapping the whole reply.
// Backticks inside the document are left alone.
func sanitize(raw string) string {
	s := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
	if rest, ok := strings.CutPrefix(s, "```"); ok {
		for _, lang := range []string{"json", "JSON"} {
			if r, ok := strings.CutPrefix(rest, lang); ok {
				rest = r
				break
			}
		}
		s = rest
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

var errNotObject = errors.New("top-level JSON value is not an object")

func decodeObject(text string) (map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}

// extractCandidates returns every balanced {...} span in text, skipping
// braces inside JSON strings. Nested objects are part of their outermost span.
func extractCandidates(text string) []string {
	var out []string
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		end := matchBrace(text, i)
		if end < 0 {
			continue
		}
		out = append(out, text[i:end+1])
		i = end
	}
	return out
}

// matchBrace returns the index of the brace closing the one at start, or -1.
func matchBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func longest(candidates []string) string {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if len(c) > len(best) {
			best = c
		}
	}
	return best
}

var overviewFields = []string{
	"destination", "dates", "start_date", "end_date", "duration",
	"budget_level", "accommodation", "travelers", "dietary_plan", "trip_type",
}

// validate walks the required-field checklist in order and reports the first
// missing or mistyped field by its dotted path. The overlaid sections are only
// checked for presence.
func validate(doc map[string]any) error {
	missing := func(field string) error { return &MalformedResponseError{Field: field} }

	overview, ok := doc["trip_overview"].(map[string]any)
	if !ok {
		return missing("trip_overview")
	}
	for _, key := range []string{"destination", "duration"} {
		if isBlank(overview[key]) {
			return missing("trip_overview." + key)
		}
	}
	for _, key := range overviewFields {
		if v := overview[key]; v != nil && !isString(v) {
			return mismatch("trip_overview."+key, "a string")
		}
	}

	days, ok := doc["itinerary"].([]any)
	if !ok || len(days) == 0 {
		return missing("itinerary")
	}
	for i, d := range days {
		path := fmt.Sprintf("itinerary[%d]", i)
		day, ok := d.(map[string]any)
		if !ok {
			return missing(path)
		}
		if v := day["day"]; v != nil {
			if n, ok := v.(float64); !ok || n != math.Trunc(n) {
				return mismatch(path+".day", "a whole number")
			}
		}
		if v := day["date"]; v != nil && !isString(v) {
			return mismatch(path+".date", "a string")
		}
		for _, period := range []string{"morning", "afternoon", "evening"} {
			if !hasActivities(day[period]) {
				return missing(path + "." + period)
			}
			if err := checkPeriod(day[period], path+"."+period); err != nil {
				return err
			}
		}
	}

	info, ok := doc["additional_info"].(map[string]any)
	if !ok {
		return missing("additional_info")
	}
	for _, key := range []string{"weather", "packing_tips", "local_currency", "transportation", "emergency"} {
		if info[key] == nil {
			return missing("additional_info." + key)
		}
	}
	if err := checkStringList(info["packing_tips"], "additional_info.packing_tips"); err != nil {
		return err
	}
	return checkTransportation(info["transportation"], "additional_info.transportation")
}

func mismatch(field, want string) error {
	return &MalformedResponseError{Field: field, Cause: "expected " + want}
}

func checkPeriod(v any, path string) error {
	switch t := v.(type) {
	case []any:
		return checkStringList(t, path)
	case map[string]any:
		if tm := t["time"]; tm != nil && !isString(tm) {
			return mismatch(path+".time", "a string")
		}
		return checkStringList(t["activities"], path+".activities")
	}
	return nil
}

func checkTransportation(v any, path string) error {
	switch t := v.(type) {
	case []any:
		return checkStringList(t, path)
	case map[string]any:
		if fa := t["from_airport"]; fa != nil && !isString(fa) {
			return mismatch(path+".from_airport", "a string")
		}
		if lt := t["local_transport"]; lt != nil {
			return checkStringList(lt, path+".local_transport")
		}
		return nil
	}
	return mismatch(path, "an object")
}

func checkStringList(v any, path string) error {
	list, ok := v.([]any)
	if !ok {
		return mismatch(path, "a list of strings")
	}
	for i, item := range list {
		if !isString(item) {
			return mismatch(fmt.Sprintf("%s[%d]", path, i), "a string")
		}
	}
	return nil
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func stringValues(m map[string]any) bool {
	for _, v := range m {
		if v != nil && !isString(v) {
			return false
		}
	}
	return true
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	}
	return false
}

// hasActivities accepts a non-empty list, a non-blank string, or an object
// with a non-empty "activities" list.
func hasActivities(v any) bool {
	switch t := v.(type) {
	case []any:
		return len(t) > 0
	case string:
		return strings.TrimSpace(t) != ""
	case map[string]any:
		acts, ok := t["activities"].([]any)
		return ok && len(acts) > 0
	}
	return false
}
