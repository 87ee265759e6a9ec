package engine

// FunctionDef declaratively describes one named function available inside the
// expression IR (spec.md §4.3): its arity, declared parameter types, declared
// return type, a lowering string per dialect, and whether it may appear inside a
// MongoDB $pull condition (Glossary "Pull condition").
//
// ParamCount is -1 for variadic functions ($and, $or, $concat, ...), in which case
// every operand is checked against Params[0].
type FunctionDef struct {
	Name       string
	ParamCount int
	Params     []ReturnType
	ReturnType ReturnType
	Mapping    map[Dialect]string
	PullAllowed bool
}

func fn(name string, paramCount int, params []ReturnType, ret ReturnType, pullAllowed bool, mapping map[Dialect]string) FunctionDef {
	return FunctionDef{Name: name, ParamCount: paramCount, Params: params, ReturnType: ret, PullAllowed: pullAllowed, Mapping: mapping}
}

func sameAcrossSQL(expr string) map[Dialect]string {
	return map[Dialect]string{
		DialectPostgreSQL: expr,
		DialectMySQL:       expr,
		DialectSQLServer:   expr,
		DialectOracle:      expr,
	}
}

// comparisonMapping builds the mapping for a comparison operator whose MongoDB
// query-operator spelling and SQL infix spelling differ (e.g. "$eq" vs "=").
func comparisonMapping(mongoOp, sqlOp string) map[Dialect]string {
	m := sameAcrossSQL(sqlOp)
	m[DialectMongoDB] = mongoOp
	return m
}

// registry is the 87-entry function table. Grouped by family
// to match the spec's own grouping; the grouping has no runtime meaning, it just
// keeps this file navigable the way the teacher's dialect.go groups its metadata
// structs by feature.
var registry = buildRegistry()

func buildRegistry() map[string]FunctionDef {
	r := make(map[string]FunctionDef)
	add := func(defs ...FunctionDef) {
		for _, d := range defs {
			r[d.Name] = d
		}
	}

	any1 := []ReturnType{ReturnAny}
	bool1 := []ReturnType{ReturnStaticBoolean}
	num1 := []ReturnType{ReturnNumber}
	num2 := []ReturnType{ReturnNumber, ReturnNumber}
	text1 := []ReturnType{ReturnText}
	text2 := []ReturnType{ReturnText, ReturnText}
	textN := []ReturnType{ReturnText}
	date1 := []ReturnType{ReturnDateTime}

	// --- logical ---
	add(
		fn("$and", -1, bool1, ReturnBoolean, true, map[Dialect]string{DialectMongoDB: "$and", DialectPostgreSQL: "AND", DialectMySQL: "AND", DialectSQLServer: "AND", DialectOracle: "AND"}),
		fn("$or", -1, bool1, ReturnBoolean, true, map[Dialect]string{DialectMongoDB: "$or", DialectPostgreSQL: "OR", DialectMySQL: "OR", DialectSQLServer: "OR", DialectOracle: "OR"}),
		fn("$not", 1, []ReturnType{ReturnBoolean}, ReturnBoolean, true, map[Dialect]string{DialectMongoDB: "$not", DialectPostgreSQL: "NOT", DialectMySQL: "NOT", DialectSQLServer: "NOT", DialectOracle: "NOT"}),
		fn("$nor", -1, bool1, ReturnBoolean, true, map[Dialect]string{DialectMongoDB: "$nor", DialectPostgreSQL: "NOR", DialectMySQL: "NOR", DialectSQLServer: "NOR", DialectOracle: "NOR"}),
	)

	// --- comparison ---
	add(
		fn("$eq", 2, []ReturnType{ReturnAny, ReturnAny}, ReturnBoolean, true, comparisonMapping("$eq", "=")),
		fn("$ne", 2, []ReturnType{ReturnAny, ReturnAny}, ReturnBoolean, true, comparisonMapping("$ne", "<>")),
		fn("$gt", 2, []ReturnType{ReturnPrimitive, ReturnPrimitive}, ReturnBoolean, true, comparisonMapping("$gt", ">")),
		fn("$gte", 2, []ReturnType{ReturnPrimitive, ReturnPrimitive}, ReturnBoolean, true, comparisonMapping("$gte", ">=")),
		fn("$lt", 2, []ReturnType{ReturnPrimitive, ReturnPrimitive}, ReturnBoolean, true, comparisonMapping("$lt", "<")),
		fn("$lte", 2, []ReturnType{ReturnPrimitive, ReturnPrimitive}, ReturnBoolean, true, comparisonMapping("$lte", "<=")),
		fn("$in", 2, []ReturnType{ReturnAny, ReturnArray}, ReturnBoolean, true, comparisonMapping("$in", "IN")),
		fn("$nin", 2, []ReturnType{ReturnAny, ReturnArray}, ReturnBoolean, true, comparisonMapping("$nin", "NOT IN")),
		fn("$cmp", 2, []ReturnType{ReturnPrimitive, ReturnPrimitive}, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$cmp"}),
	)

	// --- existence ---
	add(
		fn("$exists", 1, any1, ReturnBoolean, true, map[Dialect]string{DialectMongoDB: "$exists", DialectPostgreSQL: "IS NOT NULL", DialectMySQL: "IS NOT NULL", DialectSQLServer: "IS NOT NULL", DialectOracle: "IS NOT NULL"}),
		fn("$isnull", 1, any1, ReturnBoolean, true, map[Dialect]string{DialectMongoDB: "$eq", DialectPostgreSQL: "IS NULL", DialectMySQL: "IS NULL", DialectSQLServer: "IS NULL", DialectOracle: "IS NULL"}),
		fn("$isnotnull", 1, any1, ReturnBoolean, true, map[Dialect]string{DialectMongoDB: "$ne", DialectPostgreSQL: "IS NOT NULL", DialectMySQL: "IS NOT NULL", DialectSQLServer: "IS NOT NULL", DialectOracle: "IS NOT NULL"}),
		fn("$ifnull", 2, []ReturnType{ReturnAny, ReturnAny}, ReturnAny, false, map[Dialect]string{DialectMongoDB: "$ifNull", DialectPostgreSQL: "COALESCE", DialectMySQL: "COALESCE", DialectSQLServer: "COALESCE", DialectOracle: "COALESCE"}),
	)

	// --- arithmetic ---
	add(
		fn("$add", -1, num1, ReturnNumber, false, comparisonMapping("$add", "+")),
		fn("$subtract", 2, num2, ReturnNumber, false, comparisonMapping("$subtract", "-")),
		fn("$multiply", -1, num1, ReturnNumber, false, comparisonMapping("$multiply", "*")),
		fn("$divide", 2, num2, ReturnNumber, false, comparisonMapping("$divide", "/")),
		fn("$mod", 2, num2, ReturnNumber, false, comparisonMapping("$mod", "%")),
		fn("$abs", 1, num1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$abs", DialectPostgreSQL: "ABS", DialectMySQL: "ABS", DialectSQLServer: "ABS", DialectOracle: "ABS"}),
		fn("$ceil", 1, num1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$ceil", DialectPostgreSQL: "CEIL", DialectMySQL: "CEIL", DialectSQLServer: "CEILING", DialectOracle: "CEIL"}),
		fn("$floor", 1, num1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$floor", DialectPostgreSQL: "FLOOR", DialectMySQL: "FLOOR", DialectSQLServer: "FLOOR", DialectOracle: "FLOOR"}),
		fn("$round", 2, []ReturnType{ReturnNumber, ReturnNumber}, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$round", DialectPostgreSQL: "ROUND", DialectMySQL: "ROUND", DialectSQLServer: "ROUND", DialectOracle: "ROUND"}),
		fn("$trunc", 1, num1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$trunc", DialectPostgreSQL: "TRUNC", DialectMySQL: "TRUNCATE", DialectSQLServer: "ROUND", DialectOracle: "TRUNC"}),
		fn("$pow", 2, num2, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$pow", DialectPostgreSQL: "POWER", DialectMySQL: "POWER", DialectSQLServer: "POWER", DialectOracle: "POWER"}),
		fn("$sqrt", 1, num1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$sqrt", DialectPostgreSQL: "SQRT", DialectMySQL: "SQRT", DialectSQLServer: "SQRT", DialectOracle: "SQRT"}),
		fn("$ln", 1, num1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$ln", DialectPostgreSQL: "LN", DialectMySQL: "LN", DialectSQLServer: "LOG", DialectOracle: "LN"}),
		fn("$log10", 1, num1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$log10", DialectPostgreSQL: "LOG", DialectMySQL: "LOG10", DialectSQLServer: "LOG10", DialectOracle: "LOG"}),
	)

	// --- trigonometric ---
	add(
		fn("$sin", 1, num1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$sin", DialectPostgreSQL: "SIN", DialectMySQL: "SIN", DialectSQLServer: "SIN", DialectOracle: "SIN"}),
		fn("$cos", 1, num1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$cos", DialectPostgreSQL: "COS", DialectMySQL: "COS", DialectSQLServer: "COS", DialectOracle: "COS"}),
		fn("$tan", 1, num1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$tan", DialectPostgreSQL: "TAN", DialectMySQL: "TAN", DialectSQLServer: "TAN", DialectOracle: "TAN"}),
		fn("$asin", 1, num1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$asin", DialectPostgreSQL: "ASIN", DialectMySQL: "ASIN", DialectSQLServer: "ASIN", DialectOracle: "ASIN"}),
		fn("$acos", 1, num1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$acos", DialectPostgreSQL: "ACOS", DialectMySQL: "ACOS", DialectSQLServer: "ACOS", DialectOracle: "ACOS"}),
		fn("$atan", 1, num1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$atan", DialectPostgreSQL: "ATAN", DialectMySQL: "ATAN", DialectSQLServer: "ATAN", DialectOracle: "ATAN"}),
		fn("$atan2", 2, num2, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$atan2", DialectPostgreSQL: "ATAN2", DialectMySQL: "ATAN2", DialectSQLServer: "ATN2", DialectOracle: "ATAN2"}),
	)

	// --- temporal ---
	add(
		fn("$year", 1, date1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$year", DialectPostgreSQL: "EXTRACT(YEAR FROM", DialectMySQL: "YEAR", DialectSQLServer: "YEAR", DialectOracle: "EXTRACT(YEAR FROM"}),
		fn("$month", 1, date1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$month", DialectPostgreSQL: "EXTRACT(MONTH FROM", DialectMySQL: "MONTH", DialectSQLServer: "MONTH", DialectOracle: "EXTRACT(MONTH FROM"}),
		fn("$dayOfMonth", 1, date1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$dayOfMonth", DialectPostgreSQL: "EXTRACT(DAY FROM", DialectMySQL: "DAY", DialectSQLServer: "DAY", DialectOracle: "EXTRACT(DAY FROM"}),
		fn("$dayOfWeek", 1, date1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$dayOfWeek", DialectPostgreSQL: "EXTRACT(DOW FROM", DialectMySQL: "DAYOFWEEK", DialectSQLServer: "DATEPART(WEEKDAY,", DialectOracle: "TO_CHAR(%s,'D')"}),
		fn("$dayOfYear", 1, date1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$dayOfYear", DialectPostgreSQL: "EXTRACT(DOY FROM", DialectMySQL: "DAYOFYEAR", DialectSQLServer: "DATEPART(DAYOFYEAR,", DialectOracle: "TO_CHAR(%s,'DDD')"}),
		fn("$hour", 1, date1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$hour", DialectPostgreSQL: "EXTRACT(HOUR FROM", DialectMySQL: "HOUR", DialectSQLServer: "DATEPART(HOUR,", DialectOracle: "EXTRACT(HOUR FROM"}),
		fn("$minute", 1, date1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$minute", DialectPostgreSQL: "EXTRACT(MINUTE FROM", DialectMySQL: "MINUTE", DialectSQLServer: "DATEPART(MINUTE,", DialectOracle: "EXTRACT(MINUTE FROM"}),
		fn("$second", 1, date1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$second", DialectPostgreSQL: "EXTRACT(SECOND FROM", DialectMySQL: "SECOND", DialectSQLServer: "DATEPART(SECOND,", DialectOracle: "EXTRACT(SECOND FROM"}),
		fn("$week", 1, date1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$week", DialectPostgreSQL: "EXTRACT(WEEK FROM", DialectMySQL: "WEEK", DialectSQLServer: "DATEPART(WEEK,", DialectOracle: "TO_CHAR(%s,'WW')"}),
		fn("$dateAdd", 3, []ReturnType{ReturnDateTime, ReturnNumber, ReturnText}, ReturnDateTime, false, map[Dialect]string{DialectMongoDB: "$dateAdd"}),
		fn("$dateSubtract", 3, []ReturnType{ReturnDateTime, ReturnNumber, ReturnText}, ReturnDateTime, false, map[Dialect]string{DialectMongoDB: "$dateSubtract"}),
		fn("$dateDiff", 3, []ReturnType{ReturnDateTime, ReturnDateTime, ReturnText}, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$dateDiff"}),
		fn("$dateToString", 1, date1, ReturnText, false, map[Dialect]string{DialectMongoDB: "$dateToString"}),
		fn("$now", 0, nil, ReturnDateTime, false, map[Dialect]string{DialectMongoDB: "$$NOW", DialectPostgreSQL: "NOW()", DialectMySQL: "NOW()", DialectSQLServer: "GETUTCDATE()", DialectOracle: "SYSTIMESTAMP"}),
	)

	// --- string ---
	add(
		fn("$concat", -1, textN, ReturnText, false, map[Dialect]string{DialectMongoDB: "$concat", DialectPostgreSQL: "CONCAT", DialectMySQL: "CONCAT", DialectSQLServer: "CONCAT", DialectOracle: "CONCAT"}),
		fn("$substr", 3, []ReturnType{ReturnText, ReturnNumber, ReturnNumber}, ReturnText, false, map[Dialect]string{DialectMongoDB: "$substrCP", DialectPostgreSQL: "SUBSTRING", DialectMySQL: "SUBSTRING", DialectSQLServer: "SUBSTRING", DialectOracle: "SUBSTR"}),
		fn("$toUpper", 1, text1, ReturnText, false, map[Dialect]string{DialectMongoDB: "$toUpper", DialectPostgreSQL: "UPPER", DialectMySQL: "UPPER", DialectSQLServer: "UPPER", DialectOracle: "UPPER"}),
		fn("$toLower", 1, text1, ReturnText, false, map[Dialect]string{DialectMongoDB: "$toLower", DialectPostgreSQL: "LOWER", DialectMySQL: "LOWER", DialectSQLServer: "LOWER", DialectOracle: "LOWER"}),
		fn("$trim", 1, text1, ReturnText, false, map[Dialect]string{DialectMongoDB: "$trim", DialectPostgreSQL: "TRIM", DialectMySQL: "TRIM", DialectSQLServer: "TRIM", DialectOracle: "TRIM"}),
		fn("$ltrim", 1, text1, ReturnText, false, map[Dialect]string{DialectMongoDB: "$ltrim", DialectPostgreSQL: "LTRIM", DialectMySQL: "LTRIM", DialectSQLServer: "LTRIM", DialectOracle: "LTRIM"}),
		fn("$rtrim", 1, text1, ReturnText, false, map[Dialect]string{DialectMongoDB: "$rtrim", DialectPostgreSQL: "RTRIM", DialectMySQL: "RTRIM", DialectSQLServer: "RTRIM", DialectOracle: "RTRIM"}),
		fn("$startsWith", 2, text2, ReturnBoolean, true, map[Dialect]string{DialectMongoDB: "$startsWith", DialectPostgreSQL: "LIKE", DialectMySQL: "LIKE", DialectSQLServer: "LIKE", DialectOracle: "LIKE"}),
		fn("$endsWith", 2, text2, ReturnBoolean, true, map[Dialect]string{DialectMongoDB: "$endsWith", DialectPostgreSQL: "LIKE", DialectMySQL: "LIKE", DialectSQLServer: "LIKE", DialectOracle: "LIKE"}),
		fn("$includes", 2, text2, ReturnBoolean, true, map[Dialect]string{DialectMongoDB: "$includes", DialectPostgreSQL: "LIKE", DialectMySQL: "LIKE", DialectSQLServer: "LIKE", DialectOracle: "LIKE"}),
		fn("$left", 2, []ReturnType{ReturnText, ReturnNumber}, ReturnText, false, map[Dialect]string{DialectMongoDB: "$substrCP", DialectPostgreSQL: "LEFT", DialectMySQL: "LEFT", DialectSQLServer: "LEFT", DialectOracle: "SUBSTR"}),
		fn("$right", 2, []ReturnType{ReturnText, ReturnNumber}, ReturnText, false, map[Dialect]string{DialectMongoDB: "$right", DialectPostgreSQL: "RIGHT", DialectMySQL: "RIGHT", DialectSQLServer: "RIGHT", DialectOracle: "SUBSTR"}),
		fn("$indexOfCP", 2, text2, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$indexOfCP", DialectPostgreSQL: "POSITION", DialectMySQL: "LOCATE", DialectSQLServer: "CHARINDEX", DialectOracle: "INSTR"}),
		fn("$replace", 3, []ReturnType{ReturnText, ReturnText, ReturnText}, ReturnText, false, map[Dialect]string{DialectMongoDB: "$replaceAll", DialectPostgreSQL: "REPLACE", DialectMySQL: "REPLACE", DialectSQLServer: "REPLACE", DialectOracle: "REPLACE"}),
		fn("$split", 2, text2, ReturnArray, false, map[Dialect]string{DialectMongoDB: "$split"}),
		fn("$strLenCP", 1, text1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$strLenCP", DialectPostgreSQL: "LENGTH", DialectMySQL: "CHAR_LENGTH", DialectSQLServer: "LEN", DialectOracle: "LENGTH"}),
	)

	// --- size / array ---
	add(
		fn("$size", 1, []ReturnType{ReturnArray}, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$size"}),
		fn("$arrayElemAt", 2, []ReturnType{ReturnArray, ReturnNumber}, ReturnAny, false, map[Dialect]string{DialectMongoDB: "$arrayElemAt"}),
		fn("$concatArrays", -1, []ReturnType{ReturnArray}, ReturnArray, false, map[Dialect]string{DialectMongoDB: "$concatArrays"}),
		fn("$filter", -1, []ReturnType{ReturnArray}, ReturnArray, false, map[Dialect]string{DialectMongoDB: "$filter"}),
		fn("$map", -1, []ReturnType{ReturnArray}, ReturnArray, false, map[Dialect]string{DialectMongoDB: "$map"}),
		fn("$reduce", -1, []ReturnType{ReturnArray}, ReturnAny, false, map[Dialect]string{DialectMongoDB: "$reduce"}),
		fn("$setUnion", -1, []ReturnType{ReturnArray}, ReturnArray, false, map[Dialect]string{DialectMongoDB: "$setUnion"}),
		fn("$setIntersection", -1, []ReturnType{ReturnArray}, ReturnArray, false, map[Dialect]string{DialectMongoDB: "$setIntersection"}),
		fn("$setDifference", 2, []ReturnType{ReturnArray, ReturnArray}, ReturnArray, false, map[Dialect]string{DialectMongoDB: "$setDifference"}),
		fn("$anyElementTrue", 1, []ReturnType{ReturnArray}, ReturnBoolean, true, map[Dialect]string{DialectMongoDB: "$anyElementTrue"}),
		fn("$allElementsTrue", 1, []ReturnType{ReturnArray}, ReturnBoolean, true, map[Dialect]string{DialectMongoDB: "$allElementsTrue"}),
	)

	// --- coercion ---
	add(
		fn("$toInteger", 1, any1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$toInt", DialectPostgreSQL: "CAST(%s AS INTEGER)", DialectMySQL: "CAST(%s AS SIGNED)", DialectSQLServer: "CAST(%s AS INT)", DialectOracle: "CAST(%s AS NUMBER(38,0))"}),
		fn("$toDecimal", 1, any1, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$toDecimal", DialectPostgreSQL: "CAST(%s AS NUMERIC)", DialectMySQL: "CAST(%s AS DECIMAL)", DialectSQLServer: "CAST(%s AS DECIMAL)", DialectOracle: "CAST(%s AS NUMBER)"}),
		fn("$toBoolean", 1, any1, ReturnBoolean, true, map[Dialect]string{DialectMongoDB: "$toBool"}),
		fn("$toString", 1, any1, ReturnText, false, map[Dialect]string{DialectMongoDB: "$toString", DialectPostgreSQL: "CAST(%s AS TEXT)", DialectMySQL: "CAST(%s AS CHAR)", DialectSQLServer: "CAST(%s AS NVARCHAR(MAX))", DialectOracle: "TO_CHAR(%s)"}),
		fn("$toDate", 1, any1, ReturnDateTime, false, map[Dialect]string{DialectMongoDB: "$toDate"}),
	)

	// --- geo ---
	add(
		fn("$geoWithin", 2, []ReturnType{ReturnGeoPoint, ReturnObject}, ReturnBoolean, true, map[Dialect]string{DialectMongoDB: "$geoWithin"}),
		fn("$geoIntersects", 2, []ReturnType{ReturnGeoPoint, ReturnObject}, ReturnBoolean, true, map[Dialect]string{DialectMongoDB: "$geoIntersects"}),
		fn("$nearSphere", 2, []ReturnType{ReturnGeoPoint, ReturnGeoPoint}, ReturnNumber, false, map[Dialect]string{DialectMongoDB: "$nearSphere"}),
	)

	return r
}

// LookupFunction returns the registered definition for name, or (zero, false).
func LookupFunction(name string) (FunctionDef, bool) {
	def, ok := registry[name]
	return def, ok
}
