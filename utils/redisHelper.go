package utils

import (
	"os"
	"reflect"
	"strconv"
	"time"

	"bitbucket.org/mmdatafocus/purchasing_backend/config"
)

func GetCacheLifespan() time.Duration {
	lifespan, err := strconv.Atoi(os.Getenv("CACHE_LIFESPAN"))
	if err != nil {
		lifespan = 1
	}
	return time.Duration(lifespan) * time.Hour
}

/* generic functions */

func GetTypeName[T any]() string {
	var v T
	typeOfT := reflect.TypeOf(v)
	return typeOfT.Name()
}

/* Redis */

// Lookup lists can live in cache for the full lifespan. Transactional
// lists (orders, details, supplier transactions) expire fast because
// every workflow re-lists them to compute next sequence numbers.
func typeHasShortExpiration(typeName string) bool {
	shortLivedTypes := map[string]bool{
		"PurchaseOrder":       true,
		"PurchaseOrderDetail": true,
		"GrnBatch":            true,
		"SuppTrans":           true,
	}
	return shortLivedTypes[typeName]
}

// store a full resource list, key = TypeName + "List"
func StoreRedisList[T any](obj any) error {
	typeName := GetTypeName[T]()
	key := typeName + "List"

	duration := GetCacheLifespan()
	if typeHasShortExpiration(typeName) {
		duration = time.Minute
	}
	return config.SetRedisObject(key, &obj, duration)
}

// retrieve a cached resource list.
// returns nil if it does not exist
func RetrieveRedisList[T any]() ([]T, error) {
	key := GetTypeName[T]() + "List"

	var result []T
	exists, err := config.GetRedisObject(key, &result)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return result, nil
}

// clear a cached resource list, TypeNameList
func RemoveRedisList[T any]() error {
	var key string = GetTypeName[T]() + "List"
	return config.RemoveRedisKey(key)
}
