package csvsource

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/jhoicas/ventas-analytics/internal/domain"
)

// SampleSize bytes iniciales usados para detectar codificación y delimitador.
const SampleSize = 1024

// Encoding candidato de codificación de texto.
type Encoding struct {
	Name string
	enc  encoding.Encoding
}

// Decoder devuelve el decodificador de x/text para la codificación.
func (e Encoding) Decoder() *encoding.Decoder { return e.enc.NewDecoder() }

// DefaultEncodings candidatos en orden de prueba. latin1 es un alias de iso-8859-1 y se
// conserva para que el orden coincida con el de las herramientas de origen.
var DefaultEncodings = []Encoding{
	{Name: "utf-8", enc: unicode.UTF8},
	{Name: "iso-8859-1", enc: charmap.ISO8859_1},
	{Name: "latin1", enc: charmap.ISO8859_1},
	{Name: "cp1252", enc: charmap.Windows1252},
}

// DetectEncoding elige el primer candidato capaz de decodificar la muestra sin error.
// Si ninguno sirve devuelve domain.ErrEncodingUndetected.
func DetectEncoding(sample []byte, candidates []Encoding) (Encoding, error) {
	if len(candidates) == 0 {
		candidates = DefaultEncodings
	}
	for _, c := range candidates {
		if decodes(c, sample) {
			return c, nil
		}
	}
	return Encoding{}, domain.ErrEncodingUndetected
}

func decodes(c Encoding, sample []byte) bool {
	if c.enc == unicode.UTF8 {
		// la muestra puede cortar una secuencia multibyte al final
		return utf8.Valid(trimIncompleteRune(sample))
	}
	out, err := c.enc.NewDecoder().Bytes(sample)
	if err != nil {
		return false
	}
	// x/text sustituye los bytes sin asignar por U+FFFD en lugar de fallar
	return !strings.ContainsRune(string(out), utf8.RuneError)
}

// trimIncompleteRune descarta hasta 3 bytes finales que empiezan una runa sin completar.
func trimIncompleteRune(b []byte) []byte {
	for i := 1; i <= utf8.UTFMax-1 && i <= len(b); i++ {
		c := b[len(b)-i]
		if c < 0x80 {
			return b
		}
		if utf8.RuneStart(c) {
			if !utf8.FullRune(b[len(b)-i:]) {
				return b[:len(b)-i]
			}
			return b
		}
	}
	return b
}

// DetectDelimiter devuelve ';' solo si aparece estrictamente más veces que ','.
func DetectDelimiter(sample string) rune {
	if strings.Count(sample, ";") > strings.Count(sample, ",") {
		return ';'
	}
	return ','
}
