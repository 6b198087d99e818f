// Package stock contiene el motor de suficiencia de stock de medicamentos: consumo diario,
// proyección de saldo al fin del tratamiento y clasificación ok/low/critical.
//
// Todas las funciones son puras: reciben datos ya materializados y una fecha de referencia
// explícita, no hacen I/O y pueden llamarse en paralelo sin sincronización.
package stock
