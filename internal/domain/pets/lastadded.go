package pets

import "sync"

// Record es el último registro creado o tocado, de cualquiera de las dos colecciones.
type Record struct {
	Kind Kind
	Cat  Cat
	Dog  Dog
}

func CatRecord(c Cat) Record { return Record{Kind: KindCat, Cat: c} }
func DogRecord(d Dog) Record { return Record{Kind: KindDog, Dog: d} }

func (r Record) Name() string {
	if r.Kind == KindDog {
		return r.Dog.Name
	}
	return r.Cat.Name
}

// placeholder usado hasta que se cree el primer registro. No está persistido (ID vacío).
func placeholderRecord() Record {
	return CatRecord(Cat{Name: "unknown", BedsOwned: 0})
}

// RecordCache guarda un único registro por proceso; no se persiste.
// Escritores concurrentes: gana la última escritura.
type RecordCache struct {
	mu  sync.RWMutex
	rec Record
}

func NewRecordCache() *RecordCache {
	return &RecordCache{rec: placeholderRecord()}
}

func (c *RecordCache) Get() Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rec
}

func (c *RecordCache) Set(r Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rec = r
}
