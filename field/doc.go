/*
Package field describes the fields of a model (their optypes, analysis
options and summaries), the Value sum type used for inputs, predicate
operands and predictions, the View that maps field names to ids and
normalizes input records, and the Predicate evaluated on each tree split.
*/
package field
