package entity

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Area es una de las cuatro zonas físicas fijas donde se guarda stock.
// Es un enumerado cerrado: no existen áreas dinámicas.
type Area uint8

const (
	AreaAlmacen  Area = iota // bodega principal
	AreaCocina               // cocina caliente
	AreaEnsalada             // estación de ensaladas
	AreaIsla                 // isla de servicio

	numAreas = 4
)

// Areas lista las áreas en orden canónico.
var Areas = [numAreas]Area{AreaAlmacen, AreaCocina, AreaEnsalada, AreaIsla}

var areaNames = [numAreas]string{"almacen", "cocina", "ensalada", "isla"}

// String devuelve el nombre canónico del área (minúsculas, sin tilde).
func (a Area) String() string {
	if !a.Valid() {
		return fmt.Sprintf("area(%d)", uint8(a))
	}
	return areaNames[a]
}

// Valid informa si el valor corresponde a una de las cuatro áreas.
func (a Area) Valid() bool { return a < numAreas }

// MarshalText serializa el área por nombre (JSON, claves de mapa).
func (a Area) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("área inválida: %d", uint8(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText acepta el nombre con cualquier combinación de mayúsculas y tildes.
func (a *Area) UnmarshalText(b []byte) error {
	parsed, err := ParseArea(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseArea convierte un nombre de área sin distinguir mayúsculas ni tildes ("Almacén" == "almacen").
func ParseArea(s string) (Area, error) {
	key := foldName(s)
	for i, name := range areaNames {
		if key == name {
			return Area(i), nil
		}
	}
	return 0, fmt.Errorf("área desconocida %q", s)
}

// foldName quita marcas diacríticas y aplica case folding.
func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	// Un Caser no es seguro entre goroutines: se crea por llamada.
	return cases.Fold().String(out)
}

// Stocks guarda exactamente una cantidad por área. El valor cero equivale a "sin stock".
type Stocks [numAreas]decimal.Decimal

// Get devuelve la cantidad del área.
func (s Stocks) Get(a Area) decimal.Decimal { return s[a] }

// Set reemplaza (no acumula) la cantidad del área.
func (s *Stocks) Set(a Area, q decimal.Decimal) { s[a] = q }

// Total suma las cuatro áreas.
func (s Stocks) Total() decimal.Decimal {
	total := decimal.Zero
	for _, q := range s {
		total = total.Add(q)
	}
	return total
}

// ByName devuelve las cantidades indexadas por nombre de área (siempre las cuatro claves).
func (s Stocks) ByName() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, numAreas)
	for _, a := range Areas {
		m[a.String()] = s[a]
	}
	return m
}
