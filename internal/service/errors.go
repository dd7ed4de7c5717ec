package service

import "errors"

// Errores centinela que la capa HTTP traduce a códigos de estado.
var (
	ErrNoEncontrado   = errors.New("recurso no encontrado")
	ErrValidacion     = errors.New("datos inválidos")
	ErrIndiceInvalido = errors.New("índice de item inválido")
	ErrEstadoInvalido = errors.New("la operación no es válida en el estado actual")
	ErrYaProcesada    = errors.New("la operación ya fue procesada")
	ErrCredenciales   = errors.New("credenciales inválidas")
)
